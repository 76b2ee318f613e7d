package wasm

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/joltbridge/errors"
)

var (
	i32  = []ValType{I32}
	i32s = []ValType{I32, I32}
)

func TestWriter_LEB128(t *testing.T) {
	tests := []struct {
		v    uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{624485, []byte{0xe5, 0x8e, 0x26}},
	}
	for _, tt := range tests {
		var w writer
		w.WriteU32(tt.v)
		if !bytes.Equal(w.Bytes(), tt.want) {
			t.Errorf("WriteU32(%d) = %x, want %x", tt.v, w.Bytes(), tt.want)
		}
	}

	signed := []struct {
		v    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{63, []byte{0x3f}},
		{64, []byte{0xc0, 0x00}},
		{-1, []byte{0x7f}},
		{-64, []byte{0x40}},
		{-65, []byte{0xbf, 0x7f}},
	}
	for _, tt := range signed {
		var w writer
		w.WriteS64(tt.v)
		if !bytes.Equal(w.Bytes(), tt.want) {
			t.Errorf("WriteS64(%d) = %x, want %x", tt.v, w.Bytes(), tt.want)
		}
	}
}

func TestEncode_Header(t *testing.T) {
	bin, err := NewModule().Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(bin, want) {
		t.Errorf("empty module = %x, want %x", bin, want)
	}
}

func TestModule_RunsOnWazero(t *testing.T) {
	ctx := context.Background()

	m := NewModule()
	m.ImportFunc("env", "twice", "twice", i32, i32)
	m.Memory(1, nil)
	m.ExportMemory("memory")
	m.Table(4)
	counter := m.Global(I32, true, 0)
	m.Data(16, []byte{7, 0, 0, 0})

	// calls a function defined further down
	m.Func("add3", i32s, i32).
		LocalGet(0).LocalGet(1).I32Add().
		Call("one").I32Add().
		Export()
	m.Func("one", nil, i32).I32Const(1)
	m.Elem(1, "add3", "twice")

	m.Func("dispatch", []ValType{I32, I32, I32}, i32).
		LocalGet(1).LocalGet(2).
		LocalGet(0).
		CallIndirect(i32s, i32).
		Export()

	m.Func("host", i32, i32).LocalGet(0).Call("twice").Export()

	bump := m.Func("bump", nil, i32)
	bump.GlobalGet(counter).I32Const(1).I32Add().GlobalSet(counter).
		GlobalGet(counter).
		Export()

	sum := m.Func("sum_to", i32, i32)
	acc := sum.Local(I32)
	sum.Block().Loop().
		LocalGet(0).I32Eqz().BrIf(1).
		LocalGet(acc).LocalGet(0).I32Add().LocalSet(acc).
		LocalGet(0).I32Const(1).I32Sub().LocalSet(0).
		Br(0).
		End().End().
		LocalGet(acc).
		Export()

	m.Func("seven", nil, i32).I32Const(0).I32Load(16).Export()

	m.Func("clamp", i32, i32).
		LocalGet(0).I32Const(10).I32GtU().
		IfResult(I32).I32Const(10).Else().LocalGet(0).End().
		Export()

	bin, err := m.Encode()
	if err != nil {
		t.Fatal(err)
	}

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	_, err = rt.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = api.EncodeU32(api.DecodeU32(stack[0]) * 2)
		}), []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32}).
		Export("twice").
		Instantiate(ctx)
	if err != nil {
		t.Fatal(err)
	}

	mod, err := rt.Instantiate(ctx, bin)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	call := func(name string, args ...uint64) uint32 {
		t.Helper()
		res, err := mod.ExportedFunction(name).Call(ctx, args...)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		return api.DecodeU32(res[0])
	}

	if got := call("add3", 2, 3); got != 6 {
		t.Errorf("add3 = %d, want 6", got)
	}
	if got := call("dispatch", 1, 4, 5); got != 10 {
		t.Errorf("dispatch via table = %d, want 10", got)
	}
	if got := call("host", 21); got != 42 {
		t.Errorf("host = %d, want 42", got)
	}
	call("bump")
	if got := call("bump"); got != 2 {
		t.Errorf("bump = %d, want 2", got)
	}
	if got := call("sum_to", 4); got != 10 {
		t.Errorf("sum_to(4) = %d, want 10", got)
	}
	if got := call("seven"); got != 7 {
		t.Errorf("data segment = %d, want 7", got)
	}
	if got := call("clamp", 50); got != 10 {
		t.Errorf("clamp(50) = %d", got)
	}
	if got := call("clamp", 3); got != 3 {
		t.Errorf("clamp(3) = %d", got)
	}
	if mod.Memory() == nil {
		t.Error("memory not exported")
	}
}

func TestModule_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func(m *Module)
		kind  errors.Kind
	}{
		{
			name: "unknown call",
			build: func(m *Module) {
				m.Func("f", nil, nil).Call("missing")
			},
			kind: errors.KindNotFound,
		},
		{
			name: "unclosed block",
			build: func(m *Module) {
				m.Func("f", nil, nil).Block()
			},
			kind: errors.KindInvalidData,
		},
		{
			name: "import after function",
			build: func(m *Module) {
				m.Func("f", nil, nil)
				m.ImportFunc("env", "g", "g", nil, nil)
			},
			kind: errors.KindInvalidInput,
		},
		{
			name: "duplicate name",
			build: func(m *Module) {
				m.Func("f", nil, nil)
				m.Func("f", nil, nil)
			},
			kind: errors.KindRegistration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModule()
			tt.build(m)
			_, err := m.Encode()
			if err == nil {
				t.Fatal("expected error")
			}
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseGenerate, Kind: tt.kind}) {
				t.Errorf("error %v is not %s", err, tt.kind)
			}
		})
	}
}

func TestModule_TypeInterning(t *testing.T) {
	m := NewModule()
	a := m.Type(i32s, i32)
	b := m.Type([]ValType{I32, I32}, []ValType{I32})
	c := m.Type(i32, nil)
	if a != b {
		t.Error("identical signatures should share a type index")
	}
	if a == c {
		t.Error("different signatures must not share a type index")
	}
}
