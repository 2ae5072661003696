package overtime

import "context"

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (ApplicationResponse, error)
	Approve(ctx context.Context, req DecisionRequest) (ApplicationResponse, error)
	Reject(ctx context.Context, req DecisionRequest) (ApplicationResponse, error)
	Cancel(ctx context.Context, req CancelRequest) (ApplicationResponse, error)
	Get(ctx context.Context, id int64) (ApplicationResponse, error)
	List(ctx context.Context, filter ApplicationFilter) (ListApplicationResponse, error)
}
