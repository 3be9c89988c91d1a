package response

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

func TestErrorFromDetailString(t *testing.T) {
	err := Error(http.StatusNotFound, []byte(`{"detail":"Sheep not found"}`))
	assert.Equal(t, appErrors.ErrNotFound.Code, err.Code)
	assert.Equal(t, "Sheep not found", err.Message)
}

func TestErrorFromDetailList(t *testing.T) {
	body := []byte(`{"detail":[{"loc":["body","breed"],"msg":"field required"},{"msg":"bad date"}]}`)
	err := Error(http.StatusUnprocessableEntity, body)
	assert.Equal(t, appErrors.ErrRemote.Code, err.Code)
	assert.Equal(t, "field required; bad date", err.Message)
}

func TestErrorFromEnvelope(t *testing.T) {
	err := Error(http.StatusConflict, []byte(`{"error":{"code":"CONFLICT","message":"tag already used"}}`))
	assert.Equal(t, "tag already used", err.Message)
	assert.Equal(t, http.StatusConflict, err.Status)
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	err := Error(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	assert.Equal(t, "Bad Gateway", err.Message)
}

func TestUnwrap(t *testing.T) {
	assert.Equal(t, `[1,2]`, string(Unwrap([]byte(`{"data":[1,2],"pagination":{}}`))))
	assert.Equal(t, `[1,2]`, string(Unwrap([]byte(`[1,2]`))))
	raw := `{"id":1,"data":"x"}`
	assert.Equal(t, raw, string(Unwrap([]byte(raw))))
}
