package rastercmd

import "github.com/gogpu/raster2d/internal/pixfmt"

// FetchData is the reference-counted descriptor holding the pipeline
// fetch parameters for a non-solid style (gradient, pattern, image).
// The refcount is deliberately non-atomic: only the producing (user)
// thread ever mutates it. Workers only read a FetchData once it has been
// attached to a Command; the batch submitter is responsible for
// releasing the references workers would otherwise need to touch, once
// every command that referenced it has been processed.
type FetchData struct {
	Signature Signature
	BatchID   uint64
	Format    pixfmt.Format

	// Payload is the precomputed, pipeline-specific fetch body (e.g. a
	// flattened gradient ramp or a pattern sampler's parameters). Its
	// concrete shape is owned by the external pipeline collaborator;
	// this package only manages its lifetime.
	Payload any

	// Retain keeps the source style object (gradient, image, pattern)
	// alive for as long as this FetchData exists.
	Retain any

	// Destroy is called exactly once, when refcount drops to zero.
	Destroy func(*FetchData)

	refcount int
}

// NewFetchData creates a FetchData with an initial refcount of 1,
// representing the reference the caller (typically a style slot) is
// about to hold.
func NewFetchData(sig Signature, format pixfmt.Format, payload, retain any, destroy func(*FetchData)) *FetchData {
	return &FetchData{
		Signature: sig,
		Format:    format,
		Payload:   payload,
		Retain:    retain,
		Destroy:   destroy,
		refcount:  1,
	}
}

// Retained returns the current refcount, for tests and diagnostics.
func (f *FetchData) Retained() int { return f.refcount }

// Ref increments the refcount. Must only be called from the producing
// thread.
func (f *FetchData) Ref() *FetchData {
	f.refcount++
	return f
}

// Unref decrements the refcount, invoking Destroy once it reaches zero.
// Must only be called from the producing thread (typically while
// finalizing a batch, after all worker access to the referencing
// commands has completed).
func (f *FetchData) Unref() {
	f.refcount--
	if f.refcount == 0 && f.Destroy != nil {
		f.Destroy(f)
	}
}
