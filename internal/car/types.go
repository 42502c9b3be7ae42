package car

import (
	"fmt"
	"strings"
)

// 车辆配置的五个维度都用字符串枚举表示（持久化/JSON 传输时保持原值）。
// 零值 "" 统一表示“未选择”。

// CarType 车型枚举。
type CarType string

const (
	TypeCoupe     CarType = "coupe"
	TypeSedan     CarType = "sedan"
	TypeSUV       CarType = "suv"
	TypeCrossover CarType = "crossover"
)

// DoorType 车门枚举。
type DoorType string

const (
	TwoDoor  DoorType = "two_door"
	FourDoor DoorType = "four_door"
)

// TopType 车顶枚举。
type TopType string

const (
	Hardtop TopType = "hardtop"
	Softtop TopType = "softtop"
)

// DriveType 驱动方式枚举。
type DriveType string

const (
	TwoWheelDrive  DriveType = "two_wheel_drive"
	FourWheelDrive DriveType = "four_wheel_drive"
)

// ColorType 颜色枚举。颜色没有默认值，必须显式选择。
type ColorType string

const (
	FlashyRed     ColorType = "flashy_red"
	MidnightBlack ColorType = "midnight_black"
	ArcticWhite   ColorType = "arctic_white"
	OceanBlue     ColorType = "ocean_blue"
	GunmetalGray  ColorType = "gunmetal_gray"
)

func (t CarType) Valid() bool {
	switch t {
	case TypeCoupe, TypeSedan, TypeSUV, TypeCrossover:
		return true
	}
	return false
}

func (t DoorType) Valid() bool {
	switch t {
	case TwoDoor, FourDoor:
		return true
	}
	return false
}

func (t TopType) Valid() bool {
	switch t {
	case Hardtop, Softtop:
		return true
	}
	return false
}

func (t DriveType) Valid() bool {
	switch t {
	case TwoWheelDrive, FourWheelDrive:
		return true
	}
	return false
}

func (t ColorType) Valid() bool {
	switch t {
	case FlashyRed, MidnightBlack, ArcticWhite, OceanBlue, GunmetalGray:
		return true
	}
	return false
}

// Parse 系列用于传输层边界（HTTP 参数等）：
// - 空串返回零值（表示未选择），由上层决定是否允许
// - 非法取值返回错误

func ParseCarType(s string) (CarType, error) {
	t := CarType(normalize(s))
	if t == "" || t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("invalid car_type: %q", s)
}

func ParseDoorType(s string) (DoorType, error) {
	t := DoorType(normalize(s))
	if t == "" || t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("invalid door_type: %q", s)
}

func ParseTopType(s string) (TopType, error) {
	t := TopType(normalize(s))
	if t == "" || t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("invalid top_type: %q", s)
}

func ParseDriveType(s string) (DriveType, error) {
	t := DriveType(normalize(s))
	if t == "" || t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("invalid drive_type: %q", s)
}

func ParseColorType(s string) (ColorType, error) {
	t := ColorType(normalize(s))
	if t == "" || t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("invalid color_type: %q", s)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
