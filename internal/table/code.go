package table

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	apperrors "barorder/internal/errors"
)

// ResolveCode turns a scanned or typed table code into a table number. It
// succeeds only for base-10 integers in [1, maxNumber].
func ResolveCode(code string, maxNumber int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil || n < 1 || n > maxNumber {
		return 0, apperrors.NewInvalidTableError(code)
	}
	return n, nil
}

// MenuPath is where a customer lands after a successful scan.
func MenuPath(number int) string {
	return fmt.Sprintf("/table/%d", number)
}

// ScanURL is the URL printed into a table's QR code.
func ScanURL(baseURL string, number int) string {
	q := url.Values{}
	q.Set("table", strconv.Itoa(number))
	return strings.TrimRight(baseURL, "/") + "/?" + q.Encode()
}
