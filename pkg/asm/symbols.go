package asm

import "fmt"

// SymbolTable maps lowercase symbol names to signed 64-bit values. It is
// built once at parse/codegen-seed time, extended during codegen pass one
// (labels, .equ, .def), and must not be mutated once pass two begins.
type SymbolTable map[string]int64

// Value looks up name, returning an error if undefined — undefined
// identifiers are a fatal condition at expression-evaluation time (spec
// §7), surfaced here as an error so callers can decide how to fail.
func (s SymbolTable) Value(name string) (int64, error) {
	v, ok := s[name]
	if !ok {
		return 0, fmt.Errorf("undefined symbol: %s", name)
	}
	return v, nil
}

// ioRegister is one entry of the ATmega16A I/O register summary. Addr is
// the raw I/O address; the symbol resolves to Addr+0x20 (RAM-mapped).
type ioRegister struct {
	name string
	addr int64
}

// atmega16aIO is the full I/O register table, address == I/O address
// (Register Summary, page 319 of the ATmega16A datasheet).
var atmega16aIO = []ioRegister{
	{"twbr", 0x00}, {"twsr", 0x01}, {"twar", 0x02}, {"twdr", 0x03},
	{"adcl", 0x04}, {"adch", 0x05}, {"adcsra", 0x06}, {"admux", 0x07},
	{"acsr", 0x08}, {"ubrrl", 0x09}, {"ucsrb", 0x0A}, {"ucsra", 0x0B},
	{"udr", 0x0C}, {"spcr", 0x0D}, {"spsr", 0x0E}, {"spdr", 0x0F},
	{"pind", 0x10}, {"ddrd", 0x11}, {"portd", 0x12}, {"pinc", 0x13},
	{"ddrc", 0x14}, {"portc", 0x15}, {"pinb", 0x16}, {"ddrb", 0x17},
	{"portb", 0x18}, {"pina", 0x19}, {"ddra", 0x1A}, {"porta", 0x1B},
	{"eecr", 0x1C}, {"eedr", 0x1D}, {"eearl", 0x1E}, {"eearh", 0x1F},
	{"ucsrc", 0x20}, {"ubrrh", 0x20}, {"wdtcr", 0x21}, {"assr", 0x22},
	{"ocr2", 0x23}, {"tcnt2", 0x24}, {"tccr2", 0x25}, {"icr1l", 0x26},
	{"icr1h", 0x27}, {"ocr1bl", 0x28}, {"ocr1bh", 0x29}, {"ocr1al", 0x2A},
	{"ocr1ah", 0x2B}, {"tcnt1l", 0x2C}, {"tcnt1h", 0x2D}, {"tccr1b", 0x2E},
	{"tccr1a", 0x2F}, {"sfior", 0x30}, {"osccal", 0x31}, {"ocdr", 0x31},
	{"tcnt0", 0x32}, {"tccr0", 0x33}, {"mcucsr", 0x34}, {"mcucr", 0x35},
	{"twcr", 0x36}, {"spmcr", 0x37}, {"tifr", 0x38}, {"timsk", 0x39},
	{"gifr", 0x3A}, {"gicr", 0x3B}, {"ocr0", 0x3C}, {"spl", 0x3D},
	{"sph", 0x3E}, {"sreg", 0x3F},
}

type bitSymbol struct {
	name string
	bit  int64
}

// atmega16aBits is the bit-name table for the SREG/MCUCR/MCUCSR/GICR/GIFR/
// TIMSK/TIFR/TCCR*/ASSR/ADCSRA/ADMUX/ACSR registers.
var atmega16aBits = []bitSymbol{
	// SREG
	{"c", 0}, {"z", 1}, {"n", 2}, {"v", 3}, {"s", 4}, {"h", 5}, {"t", 6}, {"i", 7},
	// MCUCR
	{"isc00", 0}, {"isc01", 1}, {"isc10", 2}, {"isc11", 3},
	{"sm0", 4}, {"sm1", 5}, {"se", 6}, {"sm2", 7},
	// MCUCSR
	{"porf", 0}, {"extrf", 1}, {"borf", 2}, {"wdrf", 3},
	{"jtrf", 4}, {"isc2", 6}, {"jtd", 7},
	// GICR
	{"ivce", 0}, {"ivsel", 1}, {"int2", 5}, {"int0", 6}, {"int1", 7},
	// GIFR
	{"intf2", 5}, {"intf0", 6}, {"intf1", 7},
	// TIMSK
	{"toie0", 0}, {"ocie0", 1}, {"toie1", 2}, {"ocie1b", 3},
	{"ocie1a", 4}, {"ticie1", 5}, {"toie2", 6}, {"ocie2", 7},
	// TIFR
	{"tov0", 0}, {"ocf0", 1}, {"tov1", 2}, {"ocf1b", 3},
	{"ocf1a", 4}, {"icf1", 5}, {"tov2", 6}, {"ocf2", 7},
	// TCCR0
	{"cs00", 0}, {"cs01", 1}, {"cs02", 2}, {"wgm01", 3},
	{"com00", 4}, {"com01", 5}, {"wgm00", 6}, {"foc0", 7},
	// TCCR1A
	{"wgm10", 0}, {"wgm11", 1}, {"foc1b", 2}, {"foc1a", 3},
	{"com1b0", 4}, {"com1b1", 5}, {"com1a0", 6}, {"com1a1", 7},
	// TCCR1B
	{"cs10", 0}, {"cs11", 1}, {"cs12", 2}, {"wgm12", 3},
	{"wgm13", 4}, {"ices1", 6}, {"icnc1", 7},
	// TCCR2
	{"cs20", 0}, {"cs21", 1}, {"cs22", 2}, {"wgm21", 3},
	{"com20", 4}, {"com21", 5}, {"wgm20", 6}, {"foc2", 7},
	// ASSR
	{"tcr2ub", 0}, {"ocr2ub", 1}, {"tcn2ub", 2}, {"as2", 3},
	// ADCSRA
	{"adps0", 0}, {"adps1", 1}, {"adps2", 2}, {"adie", 3},
	{"adif", 4}, {"adate", 5}, {"adsc", 6}, {"aden", 7},
	// ADMUX
	{"mux0", 0}, {"mux1", 1}, {"mux2", 2}, {"mux3", 3},
	{"mux4", 4}, {"adlar", 5}, {"refs0", 6}, {"refs1", 7},
	// ACSR
	{"acis0", 0}, {"acis1", 1}, {"acic", 2}, {"acie", 3},
	{"aci", 4}, {"aco", 5}, {"acbg", 6}, {"acd", 7},
}

// NewATmega16ASymbols returns a fresh SymbolTable seeded with register
// names, memory constants, I/O registers, and bit names for the
// ATmega16A-class target.
func NewATmega16ASymbols() SymbolTable {
	sym := make(SymbolTable, 256)

	for i := int64(0); i < 32; i++ {
		sym[fmt.Sprintf("r%d", i)] = i
	}

	sym["ramend"] = 0x045F
	sym["flashend"] = 0x1FFF
	sym["eend"] = 0x01FF
	sym["pagesize"] = 64

	for _, io := range atmega16aIO {
		sym[io.name] = io.addr + 0x20
	}

	for _, b := range atmega16aBits {
		sym[b.name] = b.bit
	}

	for i := int64(0); i < 8; i++ {
		sym[fmt.Sprintf("pa%d", i)] = i
		sym[fmt.Sprintf("dda%d", i)] = i
		sym[fmt.Sprintf("pb%d", i)] = i
		sym[fmt.Sprintf("ddb%d", i)] = i
		sym[fmt.Sprintf("pc%d", i)] = i
		sym[fmt.Sprintf("ddc%d", i)] = i
		sym[fmt.Sprintf("pd%d", i)] = i
		sym[fmt.Sprintf("ddd%d", i)] = i
	}

	return sym
}
