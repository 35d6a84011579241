package transform

import "fmt"

// Every error raised by the transformation is fatal and immediate: the call
// aborts and no partial result is visible to the caller. Collaborator errors
// (translator, media-query parser) surface unchanged; the types below cover
// the conditions this package detects itself.

// DeclarationError reports a line-height value matching none of the accepted
// unit forms.
type DeclarationError struct {
	Property string
	Value    string
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("Failed to parse declaration %q", e.Property+": "+e.Value)
}

// MediaTypeError reports a media query type outside the supported set.
type MediaTypeError struct {
	Type string
}

func (e *MediaTypeError) Error() string {
	return fmt.Sprintf("Failed to parse media query type %q", e.Type)
}

// MediaFeatureError reports a media query feature outside the supported set.
type MediaFeatureError struct {
	Feature string
}

func (e *MediaFeatureError) Error() string {
	return fmt.Sprintf("Failed to parse media query feature %q", e.Feature)
}

// MediaExpressionError reports a dimension feature whose value is not a
// valid length.
type MediaExpressionError struct {
	Feature string
	Value   string
}

func (e *MediaExpressionError) Error() string {
	return fmt.Sprintf("Failed to parse media query expression \"(%s: %s)\"", e.Feature, e.Value)
}

// ExportCollisionError reports an :export entry whose name shadows a class
// selector defined in the same source.
type ExportCollisionError struct {
	Name string
}

func (e *ExportCollisionError) Error() string {
	return fmt.Sprintf("Exported name %q collides with a class selector of the same name", e.Name)
}
