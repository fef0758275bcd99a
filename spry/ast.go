package spry

// Node is an expression in the syntax tree. Every node spans the source
// characters it was parsed from; a node's span always covers its children.
type Node interface {
	PosStart() Position
	PosEnd() Position
}

type NumberNode struct {
	Tok Token
}

func (n *NumberNode) PosStart() Position { return n.Tok.PosStart }
func (n *NumberNode) PosEnd() Position   { return n.Tok.PosEnd }

type StringNode struct {
	Tok Token
}

func (n *StringNode) PosStart() Position { return n.Tok.PosStart }
func (n *StringNode) PosEnd() Position   { return n.Tok.PosEnd }

type ListNode struct {
	Elements []Node
	start    Position
	end      Position
}

func (n *ListNode) PosStart() Position { return n.start }
func (n *ListNode) PosEnd() Position   { return n.end }

type VarAccessNode struct {
	Name Token
}

func (n *VarAccessNode) PosStart() Position { return n.Name.PosStart }
func (n *VarAccessNode) PosEnd() Position   { return n.Name.PosEnd }

type VarAssignNode struct {
	Name  Token
	Value Node
	start Position
}

func (n *VarAssignNode) PosStart() Position { return n.start }
func (n *VarAssignNode) PosEnd() Position   { return n.Value.PosEnd() }

type UnaryOpNode struct {
	Op      Token
	Operand Node
}

func (n *UnaryOpNode) PosStart() Position { return n.Op.PosStart }
func (n *UnaryOpNode) PosEnd() Position   { return n.Operand.PosEnd() }

type BinOpNode struct {
	Left  Node
	Op    Token
	Right Node
}

func (n *BinOpNode) PosStart() Position { return n.Left.PosStart() }
func (n *BinOpNode) PosEnd() Position   { return n.Right.PosEnd() }

type IfCase struct {
	Cond Node
	Body Node
}

type IfNode struct {
	Cases []IfCase
	Else  Node
	start Position
}

func (n *IfNode) PosStart() Position { return n.start }
func (n *IfNode) PosEnd() Position {
	if n.Else != nil {
		return n.Else.PosEnd()
	}
	return n.Cases[len(n.Cases)-1].Body.PosEnd()
}

type ForNode struct {
	VarName Token
	Start   Node
	End     Node
	Step    Node // nil means step 1
	Body    Node
	start   Position
}

func (n *ForNode) PosStart() Position { return n.start }
func (n *ForNode) PosEnd() Position   { return n.Body.PosEnd() }

type WhileNode struct {
	Cond  Node
	Body  Node
	start Position
}

func (n *WhileNode) PosStart() Position { return n.start }
func (n *WhileNode) PosEnd() Position   { return n.Body.PosEnd() }

type FuncDefNode struct {
	Name     *Token // nil for anonymous functions
	ArgNames []Token
	Body     Node
	start    Position
}

func (n *FuncDefNode) PosStart() Position { return n.start }
func (n *FuncDefNode) PosEnd() Position   { return n.Body.PosEnd() }

type CallNode struct {
	Callee Node
	Args   []Node
	end    Position
}

func (n *CallNode) PosStart() Position { return n.Callee.PosStart() }
func (n *CallNode) PosEnd() Position   { return n.end }
