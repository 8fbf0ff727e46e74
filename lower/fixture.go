// Package lower turns YAML fixtures into terms, standing in for the solver
// output that normally feeds substitutions.
//
// A fixture quantifies a value over binders and provides the substitution
// to instantiate them with:
//
//	binders: [type, lifetime, const usize]
//	value:
//	  implemented:
//	    trait: Clone
//	    args:
//	      - ref: {bound: ^0.0}
//	        lifetime: ^0.1
//	subst:
//	  - ty: i32
//	  - lifetime: static
//	  - const: "3"
//	    of: usize
package lower

import (
	"os"

	"github.com/cottand/subst/failed"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Fixture struct {
	Binders []string `yaml:"binders"`
	Value   Node     `yaml:"value"`
	Subst   []Node   `yaml:"subst"`
}

// Node is a single term. Exactly one of the variant keys is set, except for
// ref, which takes its lifetime from the lifetime key.
type Node struct {
	Ty         string          `yaml:"ty,omitempty"`
	Adt        string          `yaml:"adt,omitempty"`
	Args       []Node          `yaml:"args,omitempty"`
	Bound      string          `yaml:"bound,omitempty"`
	Ref        *Node           `yaml:"ref,omitempty"`
	Mut        bool            `yaml:"mut,omitempty"`
	Lifetime   string          `yaml:"lifetime,omitempty"`
	Fn         *FnNode         `yaml:"fn,omitempty"`
	Projection *ProjectionNode `yaml:"projection,omitempty"`
	Infer      *uint32         `yaml:"infer,omitempty"`
	Const      string          `yaml:"const,omitempty"`
	Of         string          `yaml:"of,omitempty"`

	Implemented *TraitNode   `yaml:"implemented,omitempty"`
	AliasEq     *AliasEqNode `yaml:"alias_eq,omitempty"`
	Outlives    []string     `yaml:"outlives,omitempty"`

	pos failed.Position
}

type FnNode struct {
	Binders int    `yaml:"binders"`
	Params  []Node `yaml:"params"`
	Ret     *Node  `yaml:"ret"`
}

type ProjectionNode struct {
	Trait string `yaml:"trait"`
	Assoc string `yaml:"assoc"`
	Args  []Node `yaml:"args"`
}

type TraitNode struct {
	Trait string `yaml:"trait"`
	Args  []Node `yaml:"args"`
}

type AliasEqNode struct {
	Projection ProjectionNode `yaml:"projection"`
	Ty         Node           `yaml:"ty"`
}

// UnmarshalYAML records where n starts, for error messages
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	type plain Node
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	n.pos = failed.Position{Line: value.Line, Column: value.Column}
	return nil
}

func (n Node) Pos() failed.Position { return n.pos }

func Parse(data []byte) (*Fixture, error) {
	fixture := &Fixture{}
	if err := yaml.Unmarshal(data, fixture); err != nil {
		return nil, errors.Wrap(err, "could not decode fixture")
	}
	return fixture, nil
}

func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read fixture %s", path)
	}
	fixture, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return fixture, nil
}
