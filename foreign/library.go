package foreign

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/joltbridge/errors"
	"github.com/wippyai/joltbridge/vtable"
)

// Library is a loaded foreign library: a guest module whose vtable slots
// are bound to host trampolines.
//
// A Library is NOT safe for concurrent use. Callbacks into Go run
// synchronously on the goroutine that entered the guest.
type Library struct {
	cfg      Config
	rt       wazero.Runtime
	mod      api.Module
	bindings []Binding
	tables   map[*Interface][]uint32
	images   map[unsafe.Pointer]Ptr
	boxes    *registry
	malloc   api.Function
	free     api.Function
	aborted  error
	closed   bool
}

// Open instantiates guest against the trampolines of ifaces. The guest must
// import every slot in Layout order from HostModule and export malloc and
// free, which NewGuest arranges.
func Open(ctx context.Context, cfg Config, guest []byte, ifaces ...*Interface) (*Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	if cfg.CloseOnContextDone {
		runtimeCfg = runtimeCfg.WithCloseOnContextDone(true)
	}

	l := &Library{
		cfg:      cfg,
		rt:       wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		bindings: Layout(ifaces...),
		tables:   make(map[*Interface][]uint32),
		images:   make(map[unsafe.Pointer]Ptr),
		boxes:    newRegistry(),
	}

	builder := l.rt.NewHostModuleBuilder(HostModule)
	for _, b := range l.bindings {
		l.tables[b.Interface] = append(l.tables[b.Interface], b.Table)
		builder = builder.NewFunctionBuilder().
			WithGoModuleFunction(l.trampoline(b), b.Params(), b.Results()).
			WithName(b.Import()).
			Export(b.Import())
	}
	if _, err := builder.Instantiate(ctx); err != nil {
		_ = l.rt.Close(ctx)
		return nil, errors.Registration(errors.PhaseLoad, HostModule, "trampolines", err)
	}

	compiled, err := l.rt.CompileModule(ctx, guest)
	if err != nil {
		_ = l.rt.Close(ctx)
		return nil, errors.Load("compile guest", err)
	}

	l.mod, err = l.rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(cfg.Name))
	if err != nil {
		_ = l.rt.Close(ctx)
		return nil, errors.Instantiation(err)
	}

	for name, fn := range map[string]*api.Function{"malloc": &l.malloc, "free": &l.free} {
		if *fn = l.mod.ExportedFunction(name); *fn == nil {
			_ = l.rt.Close(ctx)
			return nil, errors.NotFound(errors.PhaseLoad, "export", name)
		}
	}
	if l.mod.Memory() == nil {
		_ = l.rt.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "memory", "0")
	}

	Logger().Debug("foreign library loaded",
		zap.String("name", cfg.Name),
		zap.Int("slots", len(l.bindings)),
	)
	return l, nil
}

// Close destroys every pair still registered, running its destructor slot,
// and releases the runtime.
func (l *Library) Close(ctx context.Context) error {
	if l.closed {
		return nil
	}
	l.closed = true

	for _, e := range l.boxes.drain() {
		d := e.iface.Destructor()
		if d < 0 {
			continue
		}
		inv := Invocation{ctx: ctx, lib: l, mem: l.mod.Memory(), stack: make([]uint64, 1), box: e.box}
		e.iface.Slots[d].Invoke(&inv)
	}

	Logger().Debug("foreign library closed", zap.String("name", l.cfg.Name))
	return l.rt.Close(ctx)
}

// Config returns the configuration the library was opened with.
func (l *Library) Config() Config { return l.cfg }

// Memory is the guest's linear memory.
func (l *Library) Memory() api.Memory { return l.mod.Memory() }

// Bindings lists the table placement of every slot.
func (l *Library) Bindings() []Binding { return l.bindings }

// Live reports how many host pairs the guest currently holds.
func (l *Library) Live() int { return l.boxes.len() }

// Call invokes a guest export.
//
// A callback that reaches a no-op implementer is fatal: Call panics with
// a KindAborted error and every later call on the library returns it. Only
// Close remains useful.
func (l *Library) Call(ctx context.Context, name string, args ...uint64) ([]uint64, error) {
	if l.closed {
		return nil, errors.NotInitialized(errors.PhaseBridge, "foreign library")
	}
	if l.aborted != nil {
		return nil, l.aborted
	}
	fn := l.mod.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseBridge, "export", name)
	}
	res, err := fn.Call(ctx, args...)
	if err != nil {
		var unreachable *vtable.UnreachableError
		if errors.As(err, &unreachable) {
			if l.aborted == nil {
				l.aborted = errors.Aborted(name, unreachable)
				Logger().Error("foreign library aborted",
					zap.String("name", l.cfg.Name),
					zap.String("call", name),
					zap.Error(unreachable),
				)
			}
			panic(l.aborted)
		}
		return nil, errors.Trap(name, err)
	}
	return res, nil
}

// Aborted returns the error that stopped the library, nil while it is
// usable.
func (l *Library) Aborted() error { return l.aborted }

// Dispatch acts as a foreign caller: it has the guest call slot of iface
// through the vtable image of self.
func (l *Library) Dispatch(ctx context.Context, self Ptr, iface, slot string, args ...uint64) ([]uint64, error) {
	full := make([]uint64, 0, len(args)+1)
	full = append(full, api.EncodeU32(uint32(self)))
	full = append(full, args...)
	return l.Call(ctx, "call."+iface+"."+slot, full...)
}

// Alloc reserves size bytes of guest memory.
func (l *Library) Alloc(ctx context.Context, size uint32) (Ptr, error) {
	if l.aborted != nil {
		return 0, l.aborted
	}
	res, err := l.malloc.Call(ctx, api.EncodeU32(size))
	if err != nil {
		return 0, errors.Trap("malloc", err)
	}
	p := Ptr(api.DecodeU32(res[0]))
	if p == 0 {
		return 0, errors.AllocationFailed(errors.PhaseBridge, size)
	}
	return p, nil
}

// Free returns memory obtained from Alloc.
func (l *Library) Free(ctx context.Context, p Ptr) error {
	if p == 0 {
		return nil
	}
	if l.aborted != nil {
		return l.aborted
	}
	if _, err := l.free.Call(ctx, api.EncodeU32(uint32(p))); err != nil {
		return errors.Trap("free", err)
	}
	return nil
}

// image returns the guest vtable image for a host vtable, building it on
// first use. Images live as long as the library.
func (l *Library) image(ctx context.Context, vt unsafe.Pointer, iface *Interface) (Ptr, error) {
	if p, ok := l.images[vt]; ok {
		return p, nil
	}
	slots, ok := l.tables[iface]
	if !ok {
		return 0, errors.NotFound(errors.PhaseBridge, "interface", iface.Name)
	}

	p, err := l.Alloc(ctx, iface.ImageSize())
	if err != nil {
		return 0, err
	}
	mem := l.mod.Memory()
	for k, idx := range slots {
		if !mem.WriteUint32Le(uint32(p)+iface.Offset(k), idx) {
			return 0, errors.OutOfBounds(errors.PhaseBridge, []string{iface.Name}, uint32(p), iface.ImageSize())
		}
	}
	l.images[vt] = p

	Logger().Debug("vtable image",
		zap.String("interface", iface.Name),
		zap.Uint32("addr", uint32(p)),
	)
	return p, nil
}

// header reads the registry handle out of a guest header.
func (l *Library) header(mem api.Memory, p Ptr) (Handle, error) {
	h, ok := mem.ReadUint32Le(uint32(p) + 4)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseBridge, nil, uint32(p), HeaderSize)
	}
	return Handle(h), nil
}

// trampoline forwards a guest call on binding b to the host pair behind the
// header passed as self.
func (l *Library) trampoline(b Binding) api.GoModuleFunc {
	slot := &b.Interface.Slots[b.Slot]
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		self := Ptr(api.DecodeU32(stack[0]))
		mem := mod.Memory()

		h, err := l.header(mem, self)
		if err != nil {
			panic(err)
		}
		e, ok := l.boxes.get(h)
		if !ok {
			panic(errors.NotFound(errors.PhaseBridge, "host pair", fmt.Sprint(h)))
		}
		if e.iface != b.Interface {
			panic(errors.New(errors.PhaseBridge, errors.KindTypeMismatch).
				Path(b.Import()).
				Detail("pair implements %s", e.iface.Name).
				Build())
		}

		inv := Invocation{ctx: ctx, lib: l, mem: mem, stack: stack, self: self, box: e.box}
		if !slot.Destructor {
			slot.Invoke(&inv)
			return
		}

		l.boxes.remove(h)
		slot.Invoke(&inv)
		if _, err := l.free.Call(ctx, api.EncodeU32(uint32(self))); err != nil {
			panic(errors.Trap("free", err))
		}
	}
}
