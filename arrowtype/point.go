package arrowtype

import (
	"fmt"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// PointExtensionName is the extension name of ST_POINT columns.
const PointExtensionName = "geoarrow.wkt"

// PointExtensionType implements an Arrow extension type for ST_POINT values.
// Points are stored as WKT (Well-Known Text) in String columns, matching
// the STRING backing of the logical type.
type PointExtensionType struct {
	arrow.ExtensionBase
}

// NewPointExtensionType creates a new point extension type.
func NewPointExtensionType() *PointExtensionType {
	return &PointExtensionType{
		ExtensionBase: arrow.ExtensionBase{
			Storage: arrow.BinaryTypes.String,
		},
	}
}

// PointArray is the array type of PointExtensionType columns.
type PointArray struct {
	array.ExtensionArrayBase
}

// ArrayType returns the Go type for point arrays.
func (p *PointExtensionType) ArrayType() reflect.Type {
	return reflect.TypeOf(PointArray{})
}

// ExtensionName returns the extension type identifier.
func (p *PointExtensionType) ExtensionName() string {
	return PointExtensionName
}

// String returns a string representation of the type.
func (p *PointExtensionType) String() string {
	return "extension<" + PointExtensionName + ">"
}

// Serialize returns the extension metadata (empty for WKT points).
func (p *PointExtensionType) Serialize() string {
	return ""
}

// Deserialize creates a point extension type from metadata.
func (p *PointExtensionType) Deserialize(storageType arrow.DataType, data string) (arrow.ExtensionType, error) {
	if !arrow.TypeEqual(storageType, arrow.BinaryTypes.String) &&
		!arrow.TypeEqual(storageType, arrow.BinaryTypes.LargeString) {
		return nil, fmt.Errorf("invalid storage type for point: %s (expected String or LargeString)", storageType)
	}
	return &PointExtensionType{
		ExtensionBase: arrow.ExtensionBase{Storage: storageType},
	}, nil
}

// ExtensionEquals checks equality with another extension type.
func (p *PointExtensionType) ExtensionEquals(other arrow.ExtensionType) bool {
	otherPoint, ok := other.(*PointExtensionType)
	if !ok {
		return false
	}
	return arrow.TypeEqual(p.StorageType(), otherPoint.StorageType())
}

// RegisterPointExtension registers the point extension type with Arrow.
// Called once during package initialization; repeated calls are no-ops.
func RegisterPointExtension() {
	_ = arrow.RegisterExtensionType(NewPointExtensionType())
}

func init() {
	RegisterPointExtension()
}
