package fuzzer

import (
	"fmt"
	"math/rand"
	"strings"
)

var identPool = []string{"x", "y", "acc", "list_1", "fib", "n", "_tmp", "Head", "f2"}

// Generator produces random, syntactically valid programs.
// The same seed always yields the same sequence of programs.
type Generator struct {
	rand     *rand.Rand
	maxDepth int
}

func NewGenerator(seed int64, maxDepth int) Generator {
	return Generator{
		rand:     rand.New(rand.NewSource(seed)),
		maxDepth: maxDepth,
	}
}

func ChunkInput[T any](input []T, chunkSize uint) [][]T {
	var chunks [][]T
	if chunkSize == 0 {
		chunkSize = 1
	}

	for {
		if len(input) == 0 {
			break
		}

		// Necessary check to avoid slicing beyond slice capacity
		if uint(len(input)) < chunkSize {
			chunkSize = uint(len(input))
		}

		chunks = append(chunks, input[0:chunkSize])
		input = input[chunkSize:]
	}

	return chunks
}

// Programs generates `count` programs.
func (self *Generator) Programs(count int) []string {
	res := make([]string, 0, count)
	for i := 0; i < count; i++ {
		res = append(res, self.Program())
	}
	return res
}

func (self *Generator) Program() string {
	count := 1 + self.rand.Intn(4)
	elements := make([]string, 0, count)
	for i := 0; i < count; i++ {
		elements = append(elements, self.element(0))
	}
	return self.separator() + self.join(elements) + self.separator()
}

func (self *Generator) separator() string {
	switch self.rand.Intn(6) {
	case 0:
		return ""
	case 1:
		return "\n"
	case 2:
		return "\t"
	case 3:
		return fmt.Sprintf(" # note %d\n", self.rand.Intn(100))
	default:
		return " "
	}
}

// join glues elements together with at least one delimiter between them.
func (self *Generator) join(elements []string) string {
	var builder strings.Builder
	for idx, element := range elements {
		if idx > 0 {
			sep := self.separator()
			if sep == "" {
				sep = " "
			}
			builder.WriteString(sep)
		}
		builder.WriteString(element)
	}
	return builder.String()
}

func (self *Generator) form(keyword string, operands ...string) string {
	return "(" + self.join(append([]string{keyword}, operands...)) + ")"
}

func (self *Generator) ident() string {
	return identPool[self.rand.Intn(len(identPool))]
}

func (self *Generator) atom() string {
	switch self.rand.Intn(6) {
	case 0:
		sign := []string{"", "+", "-"}[self.rand.Intn(3)]
		return fmt.Sprintf("%s%d", sign, self.rand.Intn(100000))
	case 1:
		return fmt.Sprintf("%d.%d", self.rand.Intn(1000), self.rand.Intn(1000))
	case 2:
		return []string{"true", "false"}[self.rand.Intn(2)]
	case 3:
		return "null"
	default:
		return self.ident()
	}
}

func (self *Generator) list(depth int) string {
	count := 1 + self.rand.Intn(3)
	elements := make([]string, 0, count)
	for i := 0; i < count; i++ {
		elements = append(elements, self.element(depth+1))
	}
	return "(" + self.join(elements) + ")"
}

func (self *Generator) element(depth int) string {
	if depth >= self.maxDepth {
		return self.atom()
	}

	switch self.rand.Intn(14) {
	case 0, 1, 2:
		return self.atom()
	case 3, 4:
		return self.list(depth)
	case 5:
		return "'" + self.element(depth+1)
	case 6:
		return self.form("quote", self.element(depth+1))
	case 7:
		return self.form("setq", self.ident(), self.element(depth+1))
	case 8:
		return self.form("func", self.ident(), self.list(depth), self.element(depth+1))
	case 9:
		return self.form([]string{"lambda", "prog"}[self.rand.Intn(2)], self.list(depth), self.element(depth+1))
	case 10:
		if self.rand.Intn(2) == 0 {
			return self.form("cond", self.element(depth+1), self.element(depth+1))
		}
		return self.form("cond", self.element(depth+1), self.element(depth+1), self.element(depth+1))
	case 11:
		return self.form("while", self.element(depth+1), self.element(depth+1))
	case 12:
		return self.form("return", self.element(depth+1))
	default:
		return "(break)"
	}
}
