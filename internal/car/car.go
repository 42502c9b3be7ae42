package car

import "fmt"

// Car 车辆配置值对象：五个枚举属性，构造完成后不可变。
// 只能通过 NewBuilder().....Build() 得到实例，
// 因此一个存在的 Car 一定是校验通过的（颜色必选，其余字段已落默认值）。
type Car struct {
	carType   CarType
	doorType  DoorType
	topType   TopType
	driveType DriveType
	colorType ColorType
}

// newCar 内部构造函数，只允许 Builder.Build 调用。
// 四个可选字段由 Builder 预先落好默认值，这里只需要校验颜色。
func newCar(ct CarType, dt DoorType, tt TopType, dr DriveType, cl ColorType) (*Car, error) {
	if cl == "" {
		return nil, &BuildError{msg: "You must select a color!"}
	}
	return &Car{
		carType:   ct,
		doorType:  dt,
		topType:   tt,
		driveType: dr,
		colorType: cl,
	}, nil
}

func (c *Car) CarType() CarType     { return c.carType }
func (c *Car) DoorType() DoorType   { return c.doorType }
func (c *Car) TopType() TopType     { return c.topType }
func (c *Car) DriveType() DriveType { return c.driveType }
func (c *Car) ColorType() ColorType { return c.colorType }

// String 按固定顺序输出五个属性。
func (c *Car) String() string {
	return fmt.Sprintf("Car: [car type=%s, door type=%s, top type=%s, drive type=%s, color=%s]",
		c.carType, c.doorType, c.topType, c.driveType, c.colorType)
}

// Equal 逐字段比较两个 Car 是否等价（值对象语义）。
func (c *Car) Equal(o *Car) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.carType == o.carType &&
		c.doorType == o.doorType &&
		c.topType == o.topType &&
		c.driveType == o.driveType &&
		c.colorType == o.colorType
}
