package rdslog

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// wrapAPIError はAPIエラーにエラーコードを付けてラップする
func wrapAPIError(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s に失敗 (%s): %w", op, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("%s に失敗: %w", op, err)
}
