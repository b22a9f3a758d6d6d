package ast

// Children returns the direct children of a node in source order.
func Children(node Node) []Node {
	switch node := node.(type) {
	case Program:
		return []Node{node.Elements}
	case ElementsNode:
		res := make([]Node, 0, len(node.Items))
		for _, item := range node.Items {
			res = append(res, item)
		}
		return res
	case ElementNode:
		return []Node{node.Inner}
	case ListNode:
		return []Node{node.Elements}
	case QuoteForm:
		return []Node{node.Quoted}
	case SetqForm:
		return []Node{node.Target, node.Value}
	case FuncForm:
		return []Node{node.Name, node.Parameters, node.Body}
	case LambdaForm:
		return []Node{node.Parameters, node.Body}
	case ProgForm:
		return []Node{node.Locals, node.Body}
	case CondForm:
		if node.Else == nil {
			return []Node{node.Condition, node.Then}
		}
		return []Node{node.Condition, node.Then, node.Else}
	case WhileForm:
		return []Node{node.Condition, node.Body}
	case ReturnForm:
		return []Node{node.Value}
	case NullLiteral, BoolLiteral, IntLiteral, RealLiteral, IdentifierLiteral, BreakForm:
		return nil
	default:
		panic("A new node was added without updating this code")
	}
}

// Walk visits `node` and all of its descendants in pre-order.
// Returning false from `visit` skips the children of the current node.
func Walk(node Node, visit func(node Node, depth int) bool) {
	walk(node, 0, visit)
}

func walk(node Node, depth int, visit func(Node, int) bool) {
	if !visit(node, depth) {
		return
	}
	for _, child := range Children(node) {
		walk(child, depth+1, visit)
	}
}
