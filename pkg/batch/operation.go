package batch

import (
	"context"

	"github.com/walteh/tclpatch/pkg/model"
)

// 🎯 Operation is one transformation bound to its parameters, applied to a
// single target file inside a model directory. Apply returns a count of
// changes: replacements for string replacement, lines for block
// commenting, and 0/1 for the boolean operations.
type Operation interface {
	// Name identifies the operation in logs and reports
	Name() string
	// Unit names what the change count counts, e.g. "replacement(s)"
	Unit() string
	// Apply runs the transformation against filename inside mdl
	Apply(ctx context.Context, mdl *model.Model, filename string) (int, error)
}

// ✏️ ReplaceOp replaces every literal occurrence of Old with New.
type ReplaceOp struct {
	Old string
	New string
}

func (o ReplaceOp) Name() string { return "replace" }
func (o ReplaceOp) Unit() string { return "replacement(s)" }

func (o ReplaceOp) Apply(ctx context.Context, mdl *model.Model, filename string) (int, error) {
	return mdl.ReplaceStringContent(ctx, filename, o.Old, o.New)
}

// 💬 CommentOutOp comments out the block delimited by Start and End.
type CommentOutOp struct {
	Start string
	End   string
}

func (o CommentOutOp) Name() string { return "comment-out" }
func (o CommentOutOp) Unit() string { return "line(s) commented out" }

func (o CommentOutOp) Apply(ctx context.Context, mdl *model.Model, filename string) (int, error) {
	return mdl.CommentOutBlock(ctx, filename, o.Start, o.End)
}

// 💉 InjectOp inserts Content after the first line matching After.
type InjectOp struct {
	Content string
	After   string
}

func (o InjectOp) Name() string { return "inject" }
func (o InjectOp) Unit() string { return "line(s) injected" }

func (o InjectOp) Apply(ctx context.Context, mdl *model.Model, filename string) (int, error) {
	injected, err := mdl.InjectLine(ctx, filename, o.Content, o.After)
	if err != nil {
		return 0, err
	}
	if injected {
		return 1, nil
	}
	return 0, nil
}

// 🔄 SetVarOp rewrites every `set <Variable> ...` assignment to Value.
type SetVarOp struct {
	Variable string
	Value    string
}

func (o SetVarOp) Name() string { return "set-var" }
func (o SetVarOp) Unit() string { return "assignment(s) rewritten" }

func (o SetVarOp) Apply(ctx context.Context, mdl *model.Model, filename string) (int, error) {
	modified, err := mdl.ReplaceVariableValue(ctx, filename, o.Variable, o.Value)
	if err != nil {
		return 0, err
	}
	if modified {
		return 1, nil
	}
	return 0, nil
}
