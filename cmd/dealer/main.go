package main

import (
	"fmt"

	"github.com/DrOldGuy/builder-pattern/internal/car"
)

// dealer 演示流式 Builder 的三种用法：
// 1) 只选颜色，其余字段落默认值
// 2) 全部字段显式指定
// 3) 什么都不选 -> 构造失败（颜色必选）
func main() {
	basic, err := car.NewBuilder().
		ColorType(car.FlashyRed).
		Build()
	if err != nil {
		panic(err)
	}
	fmt.Println("Basic=" + basic.String())

	jeep, err := car.NewBuilder().
		CarType(car.TypeSUV).
		ColorType(car.FlashyRed).
		DoorType(car.FourDoor).
		DriveType(car.FourWheelDrive).
		TopType(car.Softtop).
		Build()
	if err != nil {
		panic(err)
	}
	fmt.Println("Jeep=" + jeep.String())

	if _, err := car.NewBuilder().Build(); err != nil {
		fmt.Println(err.Error())
	}
}
