// Package requests converts node-definition files into the core create
// request types, applying defaults for absent fields.
package requests

import (
	"time"

	"github.com/webshell-go/webshell"
)

// NodeDTO is the file representation of one node-definition entry.
// Optional fields stay nil when absent so defaults can be applied at
// conversion time.
type NodeDTO struct {
	Path    string            `json:"path" yaml:"path"`
	Type    webshell.NodeType `json:"type" yaml:"type"`
	UUID    *string           `json:"uuid,omitempty" yaml:"uuid,omitempty"` // Optional identity to enable linking at request time
	Content *string           `json:"content,omitempty" yaml:"content,omitempty"`
	Ctime   *time.Time        `json:"ctime,omitempty" yaml:"ctime,omitempty"` // Created at (default load time)
	Mtime   *time.Time        `json:"mtime,omitempty" yaml:"mtime,omitempty"` // Last modified at (default load time)
}
