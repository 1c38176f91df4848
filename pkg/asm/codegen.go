package asm

import "fmt"

// Arity identifies how many operands an Op carries.
type Arity uint8

const (
	Nullary Arity = iota
	Unary
	Binary
	Ternary
)

// Op is a decoded instruction: a mnemonic plus up to three evaluated
// operand values. Arity says how many of A, B, C are meaningful.
type Op struct {
	Arity    Arity
	Mnemonic string
	A, B, C  int64
}

// CodeImage maps a program-counter index to the Op stored there.
type CodeImage map[int64]Op

// DataImage maps a data-segment address to its initial byte value.
type DataImage map[int64]int64

// wideMnemonics take two flash words (spec §4.3); everything else takes one.
var wideMnemonics = map[string]bool{
	"jmp":  true,
	"call": true,
	"lds":  true,
	"sts":  true,
}

func instructionWidth(mnemonic string) int64 {
	if wideMnemonics[mnemonic] {
		return 2
	}
	return 1
}

// codegenState tracks the cursors and current segment shared by both
// passes, mirroring the original compiler's layout bookkeeping.
type codegenState struct {
	cPC, dPC, ePC int64
	seg           Segment
}

// Generate runs the two-pass codegen algorithm over stmts: pass one
// resolves label/.equ/.def symbols and advances the segment cursors
// without emitting anything; pass two replays the same navigation and
// evaluates each Cseg instruction's operands against the now-frozen
// symbol table, emitting decoded Ops into the returned CodeImage.
//
// sym is mutated in place by pass one and must not be shared with a
// concurrent codegen run.
func Generate(stmts []Statement, sym SymbolTable) (CodeImage, DataImage) {
	layoutPass(stmts, sym)
	return emitPass(stmts, sym)
}

func layoutPass(stmts []Statement, sym SymbolTable) {
	st := &codegenState{seg: Cseg}

	for _, raw := range stmts {
		switch s := raw.(type) {
		case Label:
			sym[s.Name] = st.cursor(st.seg)

		case DirectiveStatement:
			applyDirectiveLayout(s.Directive, st, sym)

		case Instruction:
			if st.seg != Cseg {
				panic(fmt.Sprintf("instruction %q outside .cseg", s.Mnemonic))
			}
			st.cPC += instructionWidth(s.Mnemonic)

		default:
			panic(fmt.Sprintf("unknown statement type %T", raw))
		}
	}
}

func emitPass(stmts []Statement, sym SymbolTable) (CodeImage, DataImage) {
	code := make(CodeImage)
	data := make(DataImage)
	st := &codegenState{seg: Cseg}

	for _, raw := range stmts {
		switch s := raw.(type) {
		case Label:
			// Already resolved in pass one.

		case DirectiveStatement:
			applyDirectiveEmit(s.Directive, st, sym, data)

		case Instruction:
			op := decodeInstruction(s, sym, st.cPC)
			code[st.cPC] = op
			st.cPC += instructionWidth(s.Mnemonic)

		default:
			panic(fmt.Sprintf("unknown statement type %T", raw))
		}
	}

	return code, data
}

func (st *codegenState) cursor(seg Segment) int64 {
	switch seg {
	case Cseg:
		return st.cPC
	case Dseg:
		return st.dPC
	case Eseg:
		return st.ePC
	default:
		panic(fmt.Sprintf("unknown segment %d", seg))
	}
}

func applyDirectiveLayout(d Directive, st *codegenState, sym SymbolTable) {
	switch d.Kind {
	case DirEqu:
		sym[d.Name] = mustEval(d.Expr, sym)
	case DirDef:
		sym[d.Name] = mustEval(Identifier(d.Register), sym)
	case DirOrg:
		setCursor(st, mustEval(d.Expr, sym))
	case DirCseg:
		st.seg = Cseg
	case DirDseg, DirEseg:
		// The reference compiler treats .eseg as an alias for .dseg —
		// preserved here rather than giving Eseg its own cursor semantics.
		st.seg = Dseg
	default:
		panic(fmt.Sprintf("unknown directive kind %d", d.Kind))
	}
}

func applyDirectiveEmit(d Directive, st *codegenState, sym SymbolTable, data DataImage) {
	switch d.Kind {
	case DirEqu, DirDef:
		// Symbols are frozen after pass one; nothing to emit.
	case DirOrg:
		setCursor(st, mustEval(d.Expr, sym))
	case DirCseg:
		st.seg = Cseg
	case DirDseg, DirEseg:
		st.seg = Dseg
	default:
		panic(fmt.Sprintf("unknown directive kind %d", d.Kind))
	}
}

func setCursor(st *codegenState, addr int64) {
	switch st.seg {
	case Cseg:
		st.cPC = addr
	case Dseg:
		st.dPC = addr
	case Eseg:
		st.ePC = addr
	}
}

// relativeMnemonics take a label operand that the hardware encodes as a
// signed displacement from the following instruction, rather than an
// absolute address — rjmp/rcall and the conditional branches.
var relativeMnemonics = map[string]bool{
	"rjmp": true, "rcall": true,
	"brcc": true, "breq": true, "brne": true, "brtc": true, "brts": true,
}

func decodeInstruction(ins Instruction, sym SymbolTable, addr int64) Op {
	op := Op{Mnemonic: ins.Mnemonic}

	switch len(ins.Operands) {
	case 0:
		op.Arity = Nullary
	case 1:
		op.Arity = Unary
		op.A = mustEval(ins.Operands[0], sym)
		if relativeMnemonics[ins.Mnemonic] {
			op.A = op.A - (addr + 1)
		}
	case 2:
		op.Arity = Binary
		op.A = mustEval(ins.Operands[0], sym)
		op.B = mustEval(ins.Operands[1], sym)
	case 3:
		op.Arity = Ternary
		op.A = mustEval(ins.Operands[0], sym)
		op.B = mustEval(ins.Operands[1], sym)
		op.C = mustEval(ins.Operands[2], sym)
	default:
		panic(fmt.Sprintf("instruction %q has too many operands", ins.Mnemonic))
	}

	return op
}

// Eval resolves an Expression against sym, returning an error for
// undefined identifiers instead of panicking.
func Eval(e Expression, sym SymbolTable) (int64, error) {
	switch v := e.(type) {
	case Integer:
		return int64(v), nil

	case Identifier:
		return sym.Value(string(v))

	case FunctionCall:
		arg, err := Eval(v.Arg, sym)
		if err != nil {
			return 0, err
		}
		switch v.Fn {
		case High:
			return (arg >> 8) & 0xFF, nil
		case Low:
			return arg & 0xFF, nil
		default:
			return 0, fmt.Errorf("unknown function %d", v.Fn)
		}

	case BinaryOp:
		left, err := Eval(v.Left, sym)
		if err != nil {
			return 0, err
		}
		right, err := Eval(v.Right, sym)
		if err != nil {
			return 0, err
		}
		switch v.Op {
		case ShiftLeft:
			return left << uint(right), nil
		default:
			return 0, fmt.Errorf("unknown operator %d", v.Op)
		}

	default:
		return 0, fmt.Errorf("unknown expression type %T", e)
	}
}

// mustEval evaluates e against sym, panicking on failure. Pass two calls
// it with the complete symbol table; pass one also calls it for .equ,
// .def and .org, where only symbols defined earlier in the source are
// visible, so a forward reference there panics as undefined.
func mustEval(e Expression, sym SymbolTable) int64 {
	v, err := Eval(e, sym)
	if err != nil {
		panic(err.Error())
	}
	return v
}
