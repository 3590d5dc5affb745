// chain.go builds linear Fusion node chains on top of AddTool and
// ConnectTool.

package resolve

import (
	"context"
	"strings"
)

// ChainNode is one requested node of a chain. Params are applied as tool
// inputs before the node is renamed to Name.
type ChainNode struct {
	Type   string
	Name   string
	Params map[string]any
}

// MainInput is the input a chained node's predecessor is connected to.
const MainInput = "Input"

// BuildChain adds nodes to the current composition in order and connects
// each created node's main input to the previous created node.
//
// The active composition is checked before any entry is looked at.
// Entries without a type and nodes the host refuses to create are skipped,
// and the chain closes over the gap. created lists the types of the nodes
// that were made, in order, even when err is set part-way through.
func BuildChain(ctx context.Context, host Host, nodes []ChainNode) (created []string, err error) {
	if _, err := host.CurrentComp(ctx); err != nil {
		return nil, err
	}
	var prev string
	for _, n := range nodes {
		nodeType := strings.TrimSpace(n.Type)
		if nodeType == "" {
			continue
		}
		tool, err := host.AddTool(ctx, nodeType, strings.TrimSpace(n.Name), n.Params)
		if err != nil {
			return created, err
		}
		if tool == "" {
			continue
		}
		if prev != "" {
			if _, err := host.ConnectTool(ctx, tool, MainInput, prev); err != nil {
				return created, err
			}
		}
		prev = tool
		created = append(created, nodeType)
	}
	return created, nil
}
