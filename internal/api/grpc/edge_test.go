package grpc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"connector-service/internal/connector"
	"connector-service/internal/connectorerr"
)

func TestToConnectorErr_NilReturnsNil(t *testing.T) {
	assert.NoError(t, toConnectorErr(nil))
}

func TestToConnectorErr_ConnectorErrorMapsToItsGRPCCode(t *testing.T) {
	cerr := connectorerr.InvalidConnectorName("bogus")
	err := toConnectorErr(cerr)

	assert.Equal(t, cerr.GRPCCode(), status.Code(err))
}

func TestToConnectorErr_PlainErrorMapsToInternal(t *testing.T) {
	err := toConnectorErr(errors.New("boom"))
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestResultOrErr_OkReturnsValue(t *testing.T) {
	res := connector.Ok(connector.PaymentsResponseData{ResourceID: "pay_1"})
	v, err := resultOrErr(res)
	assert.NoError(t, err)
	assert.Equal(t, "pay_1", v.ResourceID)
}

func TestResultOrErr_ErrReturnsFailedPrecondition(t *testing.T) {
	res := connector.ErrResult[connector.PaymentsResponseData](&connector.ErrorResponse{Code: "declined", Message: "card declined"})
	_, err := resultOrErr(res)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestResultOrErr_UnfilledReturnsInternal(t *testing.T) {
	var res connector.Result[connector.PaymentsResponseData]
	_, err := resultOrErr(res)
	assert.Equal(t, codes.Internal, status.Code(err))
}
