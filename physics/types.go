package physics

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Plain data shared with the foreign library. Every type is laid out the
// way the guest lays it out and is read and written with encoding/binary,
// so blank fields stand for the guest's padding.

// Vec3 is a 3-vector padded to 16 bytes.
type Vec3 struct {
	mgl32.Vec3
	_ float32
}

// V3 builds a Vec3.
func V3(x, y, z float32) Vec3 { return Vec3{Vec3: mgl32.Vec3{x, y, z}} }

// Vec4 is a 4-vector.
type Vec4 struct {
	mgl32.Vec4
}

// Quat is a rotation quaternion stored as x, y, z, w.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdent is the identity rotation.
var QuatIdent = Quat{W: 1}

// QuatFrom converts from mathgl's scalar-first representation.
func QuatFrom(q mgl32.Quat) Quat {
	return Quat{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// Mgl converts to mathgl's representation.
func (q Quat) Mgl() mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

// Mat44 is a column-major 4x4 matrix.
type Mat44 struct {
	mgl32.Mat4
}

// Isometry is a rigid transform.
type Isometry struct {
	Position Vec3
	Rotation Quat
}

// Matrix returns the transform as a matrix.
func (i Isometry) Matrix() Mat44 {
	m := i.Rotation.Mgl().Mat4()
	m.SetCol(3, i.Position.Vec3.Vec4(1))
	return Mat44{m}
}

// Plane is the set of points p with Normal·p + Distance = 0.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// SignedDistance is positive on the side the normal points to.
func (p Plane) SignedDistance(v mgl32.Vec3) float32 {
	return p.Normal.Dot(v) + p.Distance
}

// IndexedTriangle references three vertices of a mesh.
type IndexedTriangle struct {
	Idx           [3]uint32
	MaterialIndex uint32
}

// BodyID identifies a body inside one physics system.
type BodyID uint32

// InvalidBodyID is returned where no body could be created.
const InvalidBodyID BodyID = 0xFFFFFFFF

// IsValid reports whether id names a body.
func (id BodyID) IsValid() bool { return id != InvalidBodyID }

// SubShapeID identifies a leaf shape inside a compound shape.
type SubShapeID uint32

// SubShapeIDPair names the two sides of a contact.
type SubShapeIDPair struct {
	Body1     BodyID
	SubShape1 SubShapeID
	Body2     BodyID
	SubShape2 SubShapeID
}

// ObjectLayer groups bodies for collision filtering.
type ObjectLayer uint32

// BroadPhaseLayer is the coarse layer an object layer maps to.
type BroadPhaseLayer uint8

// ValidateResult is the answer to a contact validation callback.
type ValidateResult uint32

const (
	AcceptAllContactsForThisBodyPair ValidateResult = iota
	AcceptContact
	RejectContact
	RejectAllContactsForThisBodyPair
)

// Accepted reports whether the contact goes ahead.
func (r ValidateResult) Accepted() bool { return r < RejectContact }

// Face is the supporting face of a shape, up to 32 vertices.
type Face struct {
	Size  uint32
	_     [12]byte
	Items [32]Vec3
}

// Points returns the used vertices.
func (f *Face) Points() []Vec3 { return f.Items[:min(f.Size, uint32(len(f.Items)))] }

// ManifoldPoints is one side of a contact manifold, up to 64 points.
type ManifoldPoints struct {
	Size  uint32
	_     [12]byte
	Items [64]Vec3
}

// Points returns the used points.
func (m *ManifoldPoints) Points() []Vec3 { return m.Items[:min(m.Size, uint32(len(m.Items)))] }

// CollideShapeResult describes a new contact before it is accepted.
type CollideShapeResult struct {
	ContactPointOn1  Vec3
	ContactPointOn2  Vec3
	PenetrationAxis  Vec3
	PenetrationDepth float32
	SubShapeID1      SubShapeID
	SubShapeID2      SubShapeID
	BodyID2          BodyID
	Shape1Face       Face
	Shape2Face       Face
}

// ContactManifold describes an accepted contact.
type ContactManifold struct {
	BaseOffset               Vec3
	WorldSpaceNormal         Vec3
	PenetrationDepth         float32
	SubShapeID1              SubShapeID
	SubShapeID2              SubShapeID
	_                        uint32
	RelativeContactPointsOn1 ManifoldPoints
	RelativeContactPointsOn2 ManifoldPoints
}

// ContactSettings can be changed by a listener when a contact is added or
// persisted.
type ContactSettings struct {
	CombinedFriction               float32
	CombinedRestitution            float32
	InvMassScale1                  float32
	InvInertiaScale1               float32
	InvMassScale2                  float32
	InvInertiaScale2               float32
	IsSensor                       bool
	_                              [7]byte
	RelativeLinearSurfaceVelocity  Vec3
	RelativeAngularSurfaceVelocity Vec3
}

// Guest sizes of the types above.
const (
	SizeVec3               = 16
	SizeQuat               = 16
	SizeMat44              = 64
	SizeIsometry           = 32
	SizePlane              = 16
	SizeIndexedTriangle    = 16
	SizeSubShapeIDPair     = 16
	SizeCollideShapeResult = 1120
	SizeContactManifold    = 2128
	SizeContactSettings    = 64
)

// Compile-time size checks: a mismatch makes an array length negative.
// None of the types has implicit padding, so the Go size is also the
// encoded size.
var (
	_ [unsafe.Sizeof(Vec3{}) - SizeVec3]byte
	_ [SizeVec3 - unsafe.Sizeof(Vec3{})]byte
	_ [unsafe.Sizeof(Quat{}) - SizeQuat]byte
	_ [SizeQuat - unsafe.Sizeof(Quat{})]byte
	_ [unsafe.Sizeof(Mat44{}) - SizeMat44]byte
	_ [SizeMat44 - unsafe.Sizeof(Mat44{})]byte
	_ [unsafe.Sizeof(Isometry{}) - SizeIsometry]byte
	_ [SizeIsometry - unsafe.Sizeof(Isometry{})]byte
	_ [unsafe.Sizeof(Plane{}) - SizePlane]byte
	_ [SizePlane - unsafe.Sizeof(Plane{})]byte
	_ [unsafe.Sizeof(IndexedTriangle{}) - SizeIndexedTriangle]byte
	_ [SizeIndexedTriangle - unsafe.Sizeof(IndexedTriangle{})]byte
	_ [unsafe.Sizeof(SubShapeIDPair{}) - SizeSubShapeIDPair]byte
	_ [SizeSubShapeIDPair - unsafe.Sizeof(SubShapeIDPair{})]byte
	_ [unsafe.Sizeof(CollideShapeResult{}) - SizeCollideShapeResult]byte
	_ [SizeCollideShapeResult - unsafe.Sizeof(CollideShapeResult{})]byte
	_ [unsafe.Sizeof(ContactManifold{}) - SizeContactManifold]byte
	_ [SizeContactManifold - unsafe.Sizeof(ContactManifold{})]byte
	_ [unsafe.Sizeof(ContactSettings{}) - SizeContactSettings]byte
	_ [SizeContactSettings - unsafe.Sizeof(ContactSettings{})]byte
)
