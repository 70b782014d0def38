package helpers

// OptionalString maps a form value to a nullable column, treating the empty
// string as NULL.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// OptionalInt64 maps an id value to a nullable column, treating zero as NULL.
func OptionalInt64(i int64) *int64 {
	if i == 0 {
		return nil
	}
	return &i
}

// StringValue dereferences a nullable string, with "" for NULL.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
