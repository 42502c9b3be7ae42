package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidInput 入参不合法（未知枚举取值等）。
// 传输层用 errors.Is 识别并映射为 400。
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
