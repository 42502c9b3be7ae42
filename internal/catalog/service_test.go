package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DrOldGuy/builder-pattern/internal/car"
	"github.com/DrOldGuy/builder-pattern/internal/common/middleware"
	"gorm.io/gorm"
)

// fakeStore 内存实现，测试 Service 用。
type fakeStore struct {
	listings map[string]*Listing
	failWith error // 非空时所有操作都返回这个错误
}

func newFakeStore() *fakeStore {
	return &fakeStore{listings: make(map[string]*Listing)}
}

func (f *fakeStore) Create(ctx context.Context, l *Listing) error {
	if f.failWith != nil {
		return f.failWith
	}
	cp := *l
	f.listings[l.ID] = &cp
	return nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*Listing, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	l, ok := f.listings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeStore) List(ctx context.Context, filter ListFilter) ([]Listing, int64, error) {
	if f.failWith != nil {
		return nil, 0, f.failWith
	}
	var out []Listing
	for _, l := range f.listings {
		if filter.CarType != "" && l.CarType != string(filter.CarType) {
			continue
		}
		if filter.ColorType != "" && l.ColorType != string(filter.ColorType) {
			continue
		}
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.listings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.listings, id)
	return nil
}

func TestCreateListingAppliesDefaults(t *testing.T) {
	svc := newService(newFakeStore())

	l, err := svc.CreateListing(context.Background(), CreateListingInput{
		Label:     "Basic",
		ColorType: "flashy_red",
	})
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if l.ID == "" {
		t.Fatalf("expected generated id")
	}
	if l.CarType != "coupe" || l.DoorType != "two_door" || l.TopType != "hardtop" ||
		l.DriveType != "two_wheel_drive" || l.ColorType != "flashy_red" {
		t.Fatalf("defaults not applied: %+v", l)
	}
	if l.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %s", l.Currency)
	}
}

func TestCreateListingMissingColor(t *testing.T) {
	svc := newService(newFakeStore())

	_, err := svc.CreateListing(context.Background(), CreateListingInput{Label: "No color"})
	if err == nil {
		t.Fatalf("expected failure without color")
	}
	var be *car.BuildError
	if !errors.As(err, &be) {
		t.Fatalf("expected *car.BuildError, got %T: %v", err, err)
	}
	if err.Error() != "You must select a color!" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCreateListingInvalidEnum(t *testing.T) {
	svc := newService(newFakeStore())

	_, err := svc.CreateListing(context.Background(), CreateListingInput{
		CarType:   "hovercraft",
		ColorType: "flashy_red",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetListing(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	created, err := svc.CreateListing(context.Background(), CreateListingInput{
		Label:     "Jeep",
		CarType:   "suv",
		DoorType:  "four_door",
		TopType:   "softtop",
		DriveType: "four_wheel_drive",
		ColorType: "flashy_red",
	})
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}

	got, err := svc.GetListing(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	c, err := got.Car()
	if err != nil {
		t.Fatalf("Listing.Car: %v", err)
	}
	if c.CarType() != car.TypeSUV || c.TopType() != car.Softtop {
		t.Fatalf("unexpected car: %s", c)
	}

	if _, err := svc.GetListing(context.Background(), "nope"); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestListListingsFilter(t *testing.T) {
	svc := newService(newFakeStore())
	ctx := context.Background()

	for _, in := range []CreateListingInput{
		{CarType: "suv", ColorType: "flashy_red"},
		{CarType: "sedan", ColorType: "midnight_black"},
	} {
		if _, err := svc.CreateListing(ctx, in); err != nil {
			t.Fatalf("CreateListing: %v", err)
		}
	}

	listings, total, err := svc.ListListings(ctx, ListListingsFilter{CarType: "suv"})
	if err != nil {
		t.Fatalf("ListListings: %v", err)
	}
	if total != 1 || len(listings) != 1 || listings[0].CarType != "suv" {
		t.Fatalf("unexpected result: total=%d listings=%+v", total, listings)
	}

	if _, _, err := svc.ListListings(ctx, ListListingsFilter{CarType: "hovercraft"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRemoveListing(t *testing.T) {
	svc := newService(newFakeStore())
	ctx := context.Background()

	created, err := svc.CreateListing(ctx, CreateListingInput{ColorType: "ocean_blue"})
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if err := svc.RemoveListing(ctx, created.ID); err != nil {
		t.Fatalf("RemoveListing: %v", err)
	}
	if err := svc.RemoveListing(ctx, created.ID); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestBreakerOpensOnStorageFailures(t *testing.T) {
	store := newFakeStore()
	store.failWith = errors.New("db down")
	svc := newService(store)
	ctx := context.Background()

	in := CreateListingInput{ColorType: "flashy_red"}
	for i := 0; i < 5; i++ {
		if _, err := svc.CreateListing(ctx, in); err == nil {
			t.Fatalf("expected storage error")
		}
	}
	// 连续失败后熔断打开，错误变为快速失败
	if _, err := svc.CreateListing(ctx, in); !errors.Is(err, middleware.ErrBreakerOpen) {
		t.Fatalf("expected ErrBreakerOpen, got %v", err)
	}
}
