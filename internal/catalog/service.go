package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DrOldGuy/builder-pattern/internal/car"
	"github.com/DrOldGuy/builder-pattern/internal/common/middleware"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrListingNotFound 查询的车辆配置不存在。
var ErrListingNotFound = errors.New("listing not found")

// store Service 依赖的存储面（*Repo 实现；测试时可替换）。
type store interface {
	Create(ctx context.Context, l *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, f ListFilter) ([]Listing, int64, error)
	Delete(ctx context.Context, id string) error
}

// Service 封装车辆配置目录的核心用例（不依赖 HTTP），便于复用和测试。
// 所有存储调用都经过熔断器：数据库持续失败时直接快速失败。
type Service struct {
	repo    store
	breaker *middleware.CircuitBreaker
}

func NewService(repo *Repo) *Service {
	return newService(repo)
}

func newService(repo store) *Service {
	return &Service{
		repo:    repo,
		breaker: middleware.NewCircuitBreaker("catalog-storage", 5, 30*time.Second),
	}
}

// CreateListingInput 创建配置的入参（可作为传输层 DTO 的基础）。
// 五个属性传枚举字符串，空串表示未选择（Build 时落默认值；颜色必填）。
type CreateListingInput struct {
	Label      string
	CarType    string
	DoorType   string
	TopType    string
	DriveType  string
	ColorType  string
	PriceCents int64
	Currency   string
}

// CreateListing 解析入参、经 Builder 构造 Car 后落库。
// 非法配置（未知枚举取值 / 缺颜色）在这里就被拦下，不会产生脏数据。
func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*Listing, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	ct, err := car.ParseCarType(in.CarType)
	if err != nil {
		return nil, invalidInput(err)
	}
	dt, err := car.ParseDoorType(in.DoorType)
	if err != nil {
		return nil, invalidInput(err)
	}
	tt, err := car.ParseTopType(in.TopType)
	if err != nil {
		return nil, invalidInput(err)
	}
	dr, err := car.ParseDriveType(in.DriveType)
	if err != nil {
		return nil, invalidInput(err)
	}
	cl, err := car.ParseColorType(in.ColorType)
	if err != nil {
		return nil, invalidInput(err)
	}

	c, err := car.NewBuilder().
		CarType(ct).
		DoorType(dt).
		TopType(tt).
		DriveType(dr).
		ColorType(cl).
		Build()
	if err != nil {
		return nil, err
	}

	l := newListing(uuid.NewString(), strings.TrimSpace(in.Label), c, in.PriceCents, defaultCurrency(in.Currency))
	if err := s.breaker.Call(func() error { return s.repo.Create(ctx, l) }); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) GetListing(ctx context.Context, id string) (*Listing, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalidInput(fmt.Errorf("id required"))
	}

	var l *Listing
	err := s.breaker.Call(func() error {
		var err error
		l, err = s.repo.FindByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// not found 不算存储故障，不喂给熔断器
			l, err = nil, nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListingNotFound
	}
	return l, nil
}

// ListListingsFilter 查询条件（枚举字符串；空串表示不过滤）。
type ListListingsFilter struct {
	CarType   string
	ColorType string
	Offset    int
	Limit     int
}

func (s *Service) ListListings(ctx context.Context, in ListListingsFilter) ([]Listing, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}

	f := ListFilter{Offset: in.Offset, Limit: in.Limit}
	ct, err := car.ParseCarType(in.CarType)
	if err != nil {
		return nil, 0, invalidInput(err)
	}
	cl, err := car.ParseColorType(in.ColorType)
	if err != nil {
		return nil, 0, invalidInput(err)
	}
	f.CarType, f.ColorType = ct, cl

	var (
		listings []Listing
		total    int64
	)
	callErr := s.breaker.Call(func() error {
		var err error
		listings, total, err = s.repo.List(ctx, f)
		return err
	})
	if callErr != nil {
		return nil, 0, callErr
	}
	return listings, total, nil
}

func (s *Service) RemoveListing(ctx context.Context, id string) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return invalidInput(fmt.Errorf("id required"))
	}

	var notFound bool
	err := s.breaker.Call(func() error {
		err := s.repo.Delete(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound = true
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}
	if notFound {
		return ErrListingNotFound
	}
	return nil
}

func defaultCurrency(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return "USD"
	}
	return strings.ToUpper(c)
}
