package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/snackbot/internal/orders"
)

// Callback uniques. Each carries at most one payload; everything is decoded
// here, at the transport boundary, before business logic runs.
const (
	cbAddItem     = "shop_add"
	cbRemoveItem  = "shop_del"
	cbViewCart    = "shop_cart"
	cbBackToMenu  = "shop_menu"
	cbCheckout    = "shop_checkout"
	cbChangeRoom  = "shop_room"
	cbAddComment  = "shop_comment"
	cbConfirm     = "shop_confirm"
	cbAdminStatus = "adm_status"
)

// ErrMalformedAction marks callback payloads that do not decode into a valid
// typed action.
var ErrMalformedAction = errors.New("bot: malformed action payload")

// decodeItemPayload validates an item-carrying payload.
func decodeItemPayload(payload string) (string, error) {
	id := strings.TrimSpace(payload)
	if id == "" {
		return "", fmt.Errorf("%w: empty item id", ErrMalformedAction)
	}
	return id, nil
}

// decodeAdminPayload parses "orderID|STATUS" into typed values.
func decodeAdminPayload(payload string) (int64, orders.Status, error) {
	parts := strings.SplitN(payload, "|", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedAction, payload)
	}
	orderID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || orderID <= 0 {
		return 0, "", fmt.Errorf("%w: bad order id in %q", ErrMalformedAction, payload)
	}
	status, err := orders.ParseStatus(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, "", fmt.Errorf("%w: bad status in %q", ErrMalformedAction, payload)
	}
	return orderID, status, nil
}

// encodeAdminPayload is the inverse used when building admin keyboards.
func encodeAdminPayload(orderID int64, status orders.Status) string {
	return fmt.Sprintf("%d|%s", orderID, status)
}
