package catalog

import (
	"time"

	"github.com/DrOldGuy/builder-pattern/internal/car"
)

// Listing 是 listings 表的 GORM 模型：在售车辆配置。
// 五个配置属性存的是构造完成后的取值（默认值已落库），
// 所以任何一条记录都能无条件地重建出合法的 car.Car。
type Listing struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Label      string    `gorm:"size:64"` // 展示名，如 "Jeep"
	CarType    string    `gorm:"size:16;not null;index"`
	DoorType   string    `gorm:"size:16;not null"`
	TopType    string    `gorm:"size:16;not null"`
	DriveType  string    `gorm:"size:24;not null"`
	ColorType  string    `gorm:"size:16;not null;index"`
	PriceCents int64     `gorm:"not null;default:0"` // 单位：分
	Currency   string    `gorm:"size:8;not null;default:'USD'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Car 从存储的属性重建值对象（经由 Builder，保持同一条校验路径）。
func (l *Listing) Car() (*car.Car, error) {
	return car.NewBuilder().
		CarType(car.CarType(l.CarType)).
		DoorType(car.DoorType(l.DoorType)).
		TopType(car.TopType(l.TopType)).
		DriveType(car.DriveType(l.DriveType)).
		ColorType(car.ColorType(l.ColorType)).
		Build()
}

// newListing 用构造完成的 Car 生成待落库的记录。
func newListing(id, label string, c *car.Car, priceCents int64, currency string) *Listing {
	return &Listing{
		ID:         id,
		Label:      label,
		CarType:    string(c.CarType()),
		DoorType:   string(c.DoorType()),
		TopType:    string(c.TopType()),
		DriveType:  string(c.DriveType()),
		ColorType:  string(c.ColorType()),
		PriceCents: priceCents,
		Currency:   currency,
	}
}
