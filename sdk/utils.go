package sdk

import (
	"context"

	"github.com/arcaid/arcaid-go/bridge"
	"github.com/arcaid/arcaid-go/log"
)

const (
	typeGetServerTime = "GET_SERVER_TIME"
	typeShowToast     = "SHOW_TOAST"
)

// Utils groups small platform conveniences.
type Utils struct {
	bridge *bridge.Bridge
}

// GetServerTime fetches the platform's notion of now.
func (u *Utils) GetServerTime(ctx context.Context) (map[string]any, error) {
	return u.bridge.Request(ctx, typeGetServerTime, nil)
}

// ShowToast asks the platform shell to display a toast. Fire and
// forget: delivery failures are logged, never surfaced to the caller.
func (u *Utils) ShowToast(message string) {
	d := u.bridge.Send(typeShowToast, map[string]any{"message": message})
	go func() {
		if _, err := d.Await(context.Background()); err != nil {
			log.Warn().Err(err).Msg("toast not delivered")
		}
	}()
}
