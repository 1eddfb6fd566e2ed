package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/infragraph/pkg/graph"
)

// datasetFile is the on-disk JSON dataset format:
//
//	{
//	  "units": [{"id": "p1", "name": "...", "type": "power", ...}],
//	  "edges": [{"from": "s1", "to": "p1"}]
//	}
type datasetFile struct {
	Units []unitRecord `json:"units"`
	Edges []edgeRecord `json:"edges"`
}

type unitRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Location   string `json:"location"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

type edgeRecord struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FileSource loads a dataset from a JSON file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading the given JSON dataset file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return fmt.Sprintf("file:%s", s.path)
}

func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeDataset(f)
}

// decodeDataset parses the JSON dataset format shared by the file and
// S3 sources.
func decodeDataset(r io.Reader) (*Dataset, error) {
	var raw datasetFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	ds := &Dataset{
		Units: make([]graph.Unit, 0, len(raw.Units)),
		Edges: make([]graph.Edge, 0, len(raw.Edges)),
	}
	for _, u := range raw.Units {
		unitType, err := graph.ParseUnitType(u.Type)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", u.ID, err)
		}
		status, err := graph.ParseUnitStatus(u.Status)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", u.ID, err)
		}
		ds.Units = append(ds.Units, graph.Unit{
			ID:         u.ID,
			Name:       u.Name,
			Type:       unitType,
			Location:   u.Location,
			Department: u.Department,
			Status:     status,
		})
	}
	for _, e := range raw.Edges {
		ds.Edges = append(ds.Edges, graph.Edge{FromID: e.From, ToID: e.To})
	}
	return ds, nil
}
