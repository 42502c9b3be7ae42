package car

// 流式 Builder：链式设置可选属性，Build 时统一落默认值并校验。
// 使用方式：
//
//	c, err := car.NewBuilder().
//		CarType(car.TypeSedan).
//		ColorType(car.MidnightBlack).
//		Build()
//
// 除颜色外所有字段都有默认值。Builder 不做并发保护：
// 一次构造对应一个 Builder，由单个调用方持有，不要跨 goroutine 共享。

// 默认配置（颜色无默认，必须显式选择）。
const (
	DefaultCarType   = TypeCoupe
	DefaultDoorType  = TwoDoor
	DefaultTopType   = Hardtop
	DefaultDriveType = TwoWheelDrive
)

// BuildError 表示 Build 时必填项缺失。
type BuildError struct {
	msg string
}

func (e *BuildError) Error() string { return e.msg }

// Builder 可变的暂存对象。setter 可以按任意顺序调用，
// 每个 setter 都是对单个槽位的覆盖写，返回自身以支持链式调用。
type Builder struct {
	carType   CarType
	doorType  DoorType
	topType   TopType
	driveType DriveType
	colorType ColorType
}

// NewBuilder 返回一个全新的 Builder（获取 Builder 的唯一入口）。
func NewBuilder() *Builder {
	return &Builder{}
}

// CarType 设置车型；传零值表示回到“未选择”（Build 时落默认值）。
func (b *Builder) CarType(t CarType) *Builder {
	b.carType = t
	return b
}

func (b *Builder) DoorType(t DoorType) *Builder {
	b.doorType = t
	return b
}

func (b *Builder) TopType(t TopType) *Builder {
	b.topType = t
	return b
}

func (b *Builder) DriveType(t DriveType) *Builder {
	b.driveType = t
	return b
}

// ColorType 设置颜色。颜色是唯一的必填项，传零值会让 Build 重新报缺失。
func (b *Builder) ColorType(t ColorType) *Builder {
	b.colorType = t
	return b
}

// Build 用当前累积状态构造 Car。
// Builder 不会被消费：同一个 Builder 可以多次 Build，
// 每次都得到一个独立的 Car；Build 失败后 Builder 仍可修正后重试。
func (b *Builder) Build() (*Car, error) {
	ct := b.carType
	if ct == "" {
		ct = DefaultCarType
	}
	dt := b.doorType
	if dt == "" {
		dt = DefaultDoorType
	}
	tt := b.topType
	if tt == "" {
		tt = DefaultTopType
	}
	dr := b.driveType
	if dr == "" {
		dr = DefaultDriveType
	}
	return newCar(ct, dt, tt, dr, b.colorType)
}
