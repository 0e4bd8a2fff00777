package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/webshell-go/webshell"
	"github.com/webshell-go/webshell/internal/util"
)

// NodeRequests holds the create requests parsed from one definition file,
// partitioned by node type. Directories are applied before files so file
// requests can rely on their ancestors.
type NodeRequests struct {
	Dirs  []*webshell.DirCreateRequest
	Files []*webshell.FileCreateRequest
}

// LoadNodesFile reads a node-definition file (a YAML or JSON array of node
// entries, format chosen by extension) and converts it into create
// requests.
func LoadNodesFile(path string) (*NodeRequests, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var dtos []NodeDTO
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal nodes file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal nodes file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown nodes file extension: %s", path)
	}

	return Convert(dtos)
}

// Convert turns parsed DTOs into create requests with defaults applied.
// Entries with an unknown type are an error, not silently dropped.
func Convert(dtos []NodeDTO) (*NodeRequests, error) {
	reqs := &NodeRequests{}
	for i, dto := range dtos {
		node := convertNodeDTO(dto)
		switch dto.Type {
		case webshell.DirNodeType:
			reqs.Dirs = append(reqs.Dirs, &webshell.DirCreateRequest{NodeRequest: node})
		case webshell.FileNodeType:
			reqs.Files = append(reqs.Files, &webshell.FileCreateRequest{
				NodeRequest: node,
				Content:     util.ValueOrDefault(dto.Content, ""),
			})
		default:
			return nil, fmt.Errorf("entry %d (%s): unknown node type %q", i, dto.Path, dto.Type)
		}
	}
	return reqs, nil
}

// Conversion logic with defaults applied in the unmarshaling layer.
func convertNodeDTO(dto NodeDTO) webshell.NodeRequest {
	now := time.Now()
	return webshell.NodeRequest{
		Path:  dto.Path,
		Type:  dto.Type,
		UUID:  util.ValueOrDefault(dto.UUID, uuid.New().String()),
		Ctime: util.Pointer(util.ValueOrDefault(dto.Ctime, now)),
		Mtime: util.Pointer(util.ValueOrDefault(dto.Mtime, now)),
	}
}
