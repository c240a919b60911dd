package store

import (
	"context"

	"busbooking/internal/client"
	"busbooking/internal/domain"
)

type Lister[T any] interface {
	FetchList(ctx context.Context, f domain.ListFilter) (domain.Page[T], error)
}

type Getter[T any] interface {
	Get(ctx context.Context, id domain.ID) (*T, error)
}

func (sl *Slice[T]) settle(op string, payload any, err error) {
	a := Action{Slice: sl.name, Op: op, Phase: Fulfilled, Payload: payload}
	if err != nil {
		a = Action{Slice: sl.name, Op: op, Phase: Rejected, Err: client.Message(err)}
	}
	_ = sl.store.Dispatch(a)
}

// RunList fetches a page into the slice's list.
func RunList[T any](ctx context.Context, sl *Slice[T], src Lister[T], f domain.ListFilter) (domain.Page[T], error) {
	_ = sl.store.Dispatch(Action{Slice: sl.name, Op: OpFetchList, Phase: Pending})
	page, err := src.FetchList(ctx, f)
	sl.settle(OpFetchList, page, err)
	return page, err
}

// RunDetail fetches one record into the slice's detail.
func RunDetail[T any](ctx context.Context, sl *Slice[T], src Getter[T], id domain.ID) (*T, error) {
	_ = sl.store.Dispatch(Action{Slice: sl.name, Op: OpFetchDetail, Phase: Pending})
	v, err := src.Get(ctx, id)
	sl.settle(OpFetchDetail, v, err)
	return v, err
}

// RunMutation wraps a create, update or delete call. The cached list is
// left as is; callers refetch it.
func RunMutation[T any](ctx context.Context, sl *Slice[T], op string, call func(context.Context) error) error {
	_ = sl.store.Dispatch(Action{Slice: sl.name, Op: op, Phase: Pending})
	err := call(ctx)
	sl.settle(op, nil, err)
	return err
}
