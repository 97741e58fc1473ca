package brand

import "context"

// ListCache holds the storefront's active brand list between requests.
// A miss is reported as ok == false, never as an error.
type ListCache interface {
	GetActive(ctx context.Context) (brands []Brand, ok bool, err error)
	SetActive(ctx context.Context, brands []Brand) error
	Invalidate(ctx context.Context) error
}
