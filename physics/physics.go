package physics

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/joltbridge/errors"
	"github.com/wippyai/joltbridge/foreign"
	"github.com/wippyai/joltbridge/physics/internal/guest"
	"github.com/wippyai/joltbridge/ref"
)

// The physics library is process wide, like the native library it stands
// in for. mu guards loading, unloading and the handle counts: calls into
// the library run without it, since listeners re-enter the library from
// callbacks.
//
// handles counts the references held on the loaded library. Shutdown moves
// them to stale; they are released as no-ops and the library cannot be
// loaded again until all are gone, so an old handle never reaches an object
// of a newer library.
var (
	mu      sync.Mutex
	lib     *foreign.Library
	handles int
	stale   int
)

func interfaces() guest.Interfaces {
	return guest.Interfaces{
		BroadPhaseLayer:         broadPhaseLayerInterfaceInterface,
		ObjectVsBroadPhaseLayer: objectVsBroadPhaseLayerFilterInterface,
		ObjectLayerPair:         objectLayerPairFilterInterface,
		BodyActivation:          bodyActivationListenerInterface,
		Contact:                 contactListenerInterface,
	}
}

// Initialize loads the physics library. It must run before any object is
// created; later calls are no-ops until Shutdown. Loading again after a
// Shutdown fails with ErrStaleHandles while handles created before the
// Shutdown are unreleased.
func Initialize(ctx context.Context, cfg foreign.Config) error {
	mu.Lock()
	defer mu.Unlock()
	if lib != nil {
		return nil
	}
	if stale > 0 {
		return errors.New(errors.PhaseBridge, errors.KindStale).
			Detail("%d handles from an unloaded library are still alive", stale).
			Build()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	in := interfaces()
	bin, err := guest.Build(cfg.MemoryPages, in)
	if err != nil {
		return err
	}
	l, err := foreign.Open(ctx, cfg, bin, guest.Order(in)...)
	if err != nil {
		return err
	}
	lib = l

	Logger().Info("physics initialized",
		zap.String("name", cfg.Name),
		zap.Uint32("pages", cfg.MemoryPages),
		zap.Int("slots", len(l.Bindings())),
	)
	return nil
}

// Shutdown unloads the library. Every handle still alive becomes unusable;
// releasing one afterwards does nothing but must still happen before the
// next Initialize.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()
	if lib == nil {
		return nil
	}
	l := lib
	lib = nil
	stale += handles
	handles = 0
	Logger().Info("physics shutdown",
		zap.Int("live_pairs", l.Live()),
		zap.Int("live_handles", stale),
	)
	return l.Close(ctx)
}

// Handles reports the references held on the loaded library and those
// left over from unloaded ones.
func Handles() (live, unloaded int) {
	mu.Lock()
	defer mu.Unlock()
	return handles, stale
}

func adopted(p foreign.Ptr) foreign.Ptr {
	if p != 0 {
		mu.Lock()
		handles++
		mu.Unlock()
	}
	return p
}

// Library exposes the loaded library, mostly for diagnostics.
func Library() (*foreign.Library, error) {
	mu.Lock()
	defer mu.Unlock()
	if lib == nil {
		return nil, errors.NotInitialized(errors.PhaseBridge, "physics")
	}
	return lib, nil
}

func call(ctx context.Context, fn string, args ...uint64) ([]uint64, error) {
	l, err := Library()
	if err != nil {
		return nil, err
	}
	return l.Call(ctx, fn, args...)
}

// mustCall backs methods that cannot report errors. A trap there means
// the library state is corrupt.
func mustCall(fn string, args ...uint64) []uint64 {
	res, err := call(context.Background(), fn, args...)
	if err != nil {
		panic(err)
	}
	return res
}

func ptrArg(p foreign.Ptr) uint64 { return api.EncodeU32(uint32(p)) }

func ptrResult(res []uint64) foreign.Ptr { return foreign.Ptr(api.DecodeU32(res[0])) }

// counted is the reference counting shared by every library object: the
// count is the first word of the object.
type counted struct{}

func (counted) Clone(p foreign.Ptr) foreign.Ptr {
	return adopted(ptrResult(mustCall("ref_add", ptrArg(p))))
}

func (counted) Drop(p foreign.Ptr) {
	mu.Lock()
	l := lib
	if l == nil {
		if stale > 0 {
			stale--
		}
		mu.Unlock()
		Logger().Debug("release after shutdown", zap.Uint32("object", uint32(p)))
		return
	}
	handles--
	mu.Unlock()

	if _, err := l.Call(context.Background(), "ref_release", ptrArg(p)); err != nil {
		if errors.Is(err, ErrAborted) {
			Logger().Debug("release on aborted library", zap.Uint32("object", uint32(p)))
			return
		}
		panic(err)
	}
}

func (counted) Count(p foreign.Ptr) uint32 {
	return api.DecodeU32(mustCall("ref_count", ptrArg(p))[0])
}

type shapeTarget struct{ counted }

func (shapeTarget) Name() string { return "Shape" }

type materialTarget struct{ counted }

func (materialTarget) Name() string { return "PhysicsMaterial" }

type systemTarget struct{ counted }

func (systemTarget) Name() string { return "PhysicsSystem" }

// create runs a library constructor and adopts the object it returns. A
// null result becomes the typed construction error of K.
func create[K ref.Target[foreign.Ptr]](ctx context.Context, fn string, args ...uint64) (ref.Ref[foreign.Ptr, K], error) {
	var callErr error
	r, err := ref.FromFactory[foreign.Ptr, K](func() foreign.Ptr {
		res, err := call(ctx, fn, args...)
		if err != nil {
			callErr = err
			return 0
		}
		return adopted(ptrResult(res))
	})
	if callErr != nil {
		return r, callErr
	}
	return r, err
}
