package crt

// NoRecordFound - Custom error to inform that no record was found
type NoRecordFound struct {
	msg string
}

// Error - Used to notify that no record was found
func (E NoRecordFound) Error() string {
	if E.msg == "" {
		return "no record found"
	}
	return E.msg
}

// BucketAlgorithm - Custom error to inform that a bucket algorithm returned a bucket outside the table
type BucketAlgorithm struct {
	msg string
}

// NewBucketAlgorithm - Returns a BucketAlgorithm error carrying msg
func NewBucketAlgorithm(msg string) BucketAlgorithm {
	return BucketAlgorithm{msg: msg}
}

// Error - Used to notify that a bucket number was out of range
func (B BucketAlgorithm) Error() string {
	if B.msg == "" {
		return "bucket number outside permitted range"
	}
	return B.msg
}

// Is - Matches any BucketAlgorithm regardless of message
func (B BucketAlgorithm) Is(target error) bool {
	_, ok := target.(BucketAlgorithm)
	return ok
}

// InvalidConfiguration - Custom error to inform that a hash map configuration can not be used
type InvalidConfiguration struct {
	msg string
}

// NewInvalidConfiguration - Returns an InvalidConfiguration error carrying msg
func NewInvalidConfiguration(msg string) InvalidConfiguration {
	return InvalidConfiguration{msg: msg}
}

// Error - Used to notify that a configuration value is invalid
func (I InvalidConfiguration) Error() string {
	if I.msg == "" {
		return "invalid configuration"
	}
	return I.msg
}

// Is - Matches any InvalidConfiguration regardless of message, so errors.Is(err, InvalidConfiguration{}) works
func (I InvalidConfiguration) Is(target error) bool {
	_, ok := target.(InvalidConfiguration)
	return ok
}
