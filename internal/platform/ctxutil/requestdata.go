package ctxutil

import "context"

type requestDataKey struct{}

// RequestData describes the authenticated caller of a request.
type RequestData struct {
	TokenString string
	UserID      uint
	Username    string
	Role        string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// UserID returns the authenticated user's id, or nil for anonymous requests.
func UserID(ctx context.Context) *uint {
	rd := GetRequestData(ctx)
	if rd == nil || rd.UserID == 0 {
		return nil
	}
	id := rd.UserID
	return &id
}
