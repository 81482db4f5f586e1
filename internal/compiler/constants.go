package compiler

// MaxBitsetStates is the largest automaton the bitset engine can encode:
// one bit of a uint64 per state.
const MaxBitsetStates = 64

// Engine names, as reported by analysis and used as labels.
const (
	EngineBitset = "Bitset"
	EngineTable  = "Table"
)
