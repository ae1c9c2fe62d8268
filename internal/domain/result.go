package domain

import "errors"

var errNilFailure = errors.New("failure without error")

// Result is a two-case outcome: success with a value, or failure with an error.
type Result[T any] struct {
	value T
	err   error
}

// PhotosResult is the outcome of listing photos.
type PhotosResult = Result[[]Photo]

// ImageResult is the outcome of fetching a photo image.
type ImageResult = Result[Image]

func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps err as a failed Result. A nil err is replaced so the
// result never looks successful.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = errNilFailure
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() error {
	return r.err
}

// Get unpacks the result into Go's value/error pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Match calls exactly one of onSuccess or onFailure.
func (r Result[T]) Match(onSuccess func(T), onFailure func(error)) {
	if r.err != nil {
		onFailure(r.err)
		return
	}
	onSuccess(r.value)
}
