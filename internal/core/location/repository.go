package location

import "context"

// Repository は拠点永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, location *Location) (*Location, error)
	Update(ctx context.Context, location *Location) (*Location, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Location, error)
	List(ctx context.Context, filter Filter) ([]*Location, error)
}
