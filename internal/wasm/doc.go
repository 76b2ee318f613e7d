// Package wasm assembles small core WebAssembly modules in memory.
//
// It covers the subset the foreign library stand-ins need: integer globals,
// one memory, one funcref table, function imports and a chained instruction
// builder whose calls are resolved by name at encode time.
//
//	m := wasm.NewModule()
//	m.Memory(1, nil)
//	m.Func("add", []wasm.ValType{wasm.I32, wasm.I32}, []wasm.ValType{wasm.I32}).
//		LocalGet(0).LocalGet(1).I32Add().
//		Export()
//	bin, err := m.Encode()
//
// Validation is left to the engine that compiles the result.
package wasm
