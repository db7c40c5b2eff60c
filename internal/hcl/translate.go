package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/particlefn/internal/config"
	"github.com/vk/particlefn/internal/ctxlog"
	"github.com/vk/particlefn/internal/particles"
	"github.com/vk/particlefn/internal/schema"
)

// translateNode converts a `node` block into the agnostic model.
func (l *Loader) translateNode(block *hcl.Block) (*config.Node, error) {
	var s schema.Node
	if diags := gohcl.DecodeBody(block.Body, nil, &s); diags.HasErrors() {
		return nil, diags
	}
	n := &config.Node{
		IDName: block.Labels[0],
		Name:   block.Labels[1],
		Range:  block.DefRange,
	}
	if s.Inputs != nil {
		attrs, diags := s.Inputs.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diags
		}
		n.Inputs = make(map[string]hcl.Expression, len(attrs))
		for name, attr := range attrs {
			n.Inputs[name] = attr.Expr
		}
	}
	return n, nil
}

// translateLink converts a `link` block into the agnostic model.
func (l *Loader) translateLink(block *hcl.Block) (*config.Link, error) {
	var s schema.Link
	if diags := gohcl.DecodeBody(block.Body, nil, &s); diags.HasErrors() {
		return nil, diags
	}
	fromNode, fromSocket, err := socketRef(s.From)
	if err != nil {
		return nil, err
	}
	toNode, toSocket, err := socketRef(s.To)
	if err != nil {
		return nil, err
	}
	return &config.Link{
		FromNode:   fromNode,
		FromSocket: fromSocket,
		ToNode:     toNode,
		ToSocket:   toSocket,
		Range:      block.DefRange,
	}, nil
}

// socketRef decodes a ["<node>", "<socket>"] pair.
func socketRef(expr hcl.Expression) (string, string, error) {
	var ref []string
	if diags := gohcl.DecodeExpression(expr, nil, &ref); diags.HasErrors() {
		return "", "", diags
	}
	if len(ref) != 2 {
		return "", "", fmt.Errorf("%s: socket reference must be [node, socket], got %d elements", expr.Range(), len(ref))
	}
	return ref[0], ref[1], nil
}

// translateBatch converts a `batch` block into the agnostic model.
func (l *Loader) translateBatch(ctx context.Context, block *hcl.Block) (*config.Batch, error) {
	logger := ctxlog.FromContext(ctx)

	var s schema.Batch
	if diags := gohcl.DecodeBody(block.Body, nil, &s); diags.HasErrors() {
		return nil, diags
	}
	b := &config.Batch{
		Name:               block.Labels[0],
		Size:               s.Size,
		Active:             s.Active,
		CurrentTimes:       toFloat32s(s.CurrentTimes),
		RemainingDurations: toFloat32s(s.RemainingDurations),
	}
	if s.EndTime != nil {
		end := float32(*s.EndTime)
		b.EndTime = &end
	}
	for i, n := range s.CollisionNormals {
		if len(n) != 3 {
			return nil, fmt.Errorf("%s: collision normal %d must have 3 components, got %d", block.DefRange, i, len(n))
		}
		b.CollisionNormals = append(b.CollisionNormals, [3]float32{float32(n[0]), float32(n[1]), float32(n[2])})
	}
	for _, a := range s.Attributes {
		typ, err := attributeType(a.Type)
		if err != nil {
			return nil, fmt.Errorf("batch %q attribute %q: %w", b.Name, a.Name, err)
		}
		b.Attributes = append(b.Attributes, &config.Attribute{
			Name:      a.Name,
			Type:      typ,
			Values:    a.Values,
			Broadcast: a.Broadcast,
		})
	}
	logger.Debug("Translated batch.", "batch", b.Name, "size", b.Size, "attributes", len(b.Attributes))
	return b, nil
}

// attributeType reads a type keyword such as `float` or `vector`.
func attributeType(expr hcl.Expression) (string, error) {
	keyword := hcl.ExprAsKeyword(expr)
	if keyword == "" {
		return "", fmt.Errorf("%s: type must be one of byte, integer, float or vector", expr.Range())
	}
	if _, err := particles.ParseAttributeType(keyword); err != nil {
		return "", fmt.Errorf("%s: %w", expr.Range(), err)
	}
	return keyword, nil
}

func toFloat32s(in []float64) []float32 {
	if in == nil {
		return nil
	}
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
