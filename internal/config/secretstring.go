package config

// SecretStringValue replaces secrets in dumps.
const SecretStringValue = "<secret>"

// SecretString is a string kept out of logs and dumps.
type SecretString string

// MarshalYAML hides the value. An empty secret marshals as null.
func (s SecretString) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return SecretStringValue, nil
}

// String hides the value from fmt and zap.Stringer.
func (s SecretString) String() string {
	if len(s) == 0 {
		return ""
	}
	return SecretStringValue
}

// Value returns the secret itself.
func (s SecretString) Value() string {
	return string(s)
}
