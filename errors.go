package rendercache

import (
	"fmt"
	"reflect"
)

// DescriptionTypeError reports a description handed to a type-erased renderer
// whose dynamic type does not match the renderer it wraps.
type DescriptionTypeError struct {
	Want reflect.Type
	Got  reflect.Type
}

func (e *DescriptionTypeError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("rendercache: erased renderer wants description %v, got untyped nil", e.Want)
	}
	return fmt.Sprintf("rendercache: erased renderer wants description %v, got %v", e.Want, e.Got)
}
