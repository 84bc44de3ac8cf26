package grpc

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"connector-service/internal/api/grpc/pb"
	"connector-service/internal/connector"
	"connector-service/internal/connectorerr"
	"connector-service/internal/engine"
	"connector-service/internal/flow"
	"connector-service/internal/registry"
	"connector-service/internal/secret"
)

// Edge implements the ConnectorGateway RPC surface (proto/connector.proto)
// by selecting a gateway through the registry per call and driving it
// through the shared engine. It holds no per-call state; ConnectorAuth
// and the gateway handle are resolved fresh from metadata on every RPC.
type Edge struct {
	eng        *engine.Engine
	registry   *registry.Registry
	connectors connector.Connectors
}

// NewEdge builds an Edge against the process-wide engine, registry, and
// connector configuration map.
func NewEdge(eng *engine.Engine, reg *registry.Registry, connectors connector.Connectors) *Edge {
	return &Edge{eng: eng, registry: reg, connectors: connectors}
}

func (e *Edge) selectService(ctx context.Context) (callIdentity, connector.ConnectorService, error) {
	id, err := identityFromContext(ctx)
	if err != nil {
		return callIdentity{}, connector.ConnectorService{}, err
	}
	svc, cerr := e.registry.Select(id.ConnectorID, id.Auth, e.connectors)
	if cerr != nil {
		return callIdentity{}, connector.ConnectorService{}, status.Error(cerr.GRPCCode(), cerr.Error())
	}
	return id, svc, nil
}

func callContext(id callIdentity, flowName string) engine.CallContext {
	return engine.CallContext{
		GatewayID:     id.ConnectorID,
		FlowName:      flowName,
		CorrelationID: uuid.NewString(),
	}
}

func toConnectorErr(err error) error {
	if err == nil {
		return nil
	}
	if cerr, ok := err.(*connectorerr.Error); ok {
		return status.Error(cerr.GRPCCode(), cerr.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func paymentMethodFromPB(m pb.PaymentMethod) connector.PaymentMethodData {
	data := connector.PaymentMethodData{
		Kind:     connector.PaymentMethodKind(m.Kind),
		UPIVPA:   m.UPIVPA,
		WalletID: m.WalletID,
		BankCode: m.BankCode,
	}
	if m.Card != nil {
		data.Card = &connector.Card{
			Number:         secret.New(m.Card.Number),
			CVV:            secret.New(m.Card.CVV),
			ExpiryMonth:    m.Card.ExpiryMonth,
			ExpiryYear:     m.Card.ExpiryYear,
			CardholderName: m.Card.CardholderName,
		}
	}
	return data
}

func paymentsResponseToPB(resp connector.PaymentsResponseData) *pb.PaymentsResponse {
	return &pb.PaymentsResponse{
		ResourceID:           resp.ResourceID,
		Status:               string(resp.Status),
		RedirectURL:          resp.RedirectURL,
		NetworkTransactionID: resp.NetworkTransactionID,
	}
}

func refundsResponseToPB(resp connector.RefundsResponseData) *pb.RefundsResponse {
	return &pb.RefundsResponse{
		ConnectorRefundID: resp.ConnectorRefundID,
		Status:            string(resp.Status),
	}
}

func disputeResponseToPB(resp connector.DisputeResponseData) *pb.DisputeResponse {
	return &pb.DisputeResponse{
		ConnectorDisputeID: resp.ConnectorDisputeID,
		Status:             string(resp.Status),
	}
}

// resultOrErr extracts the success payload from a Result, or a gRPC
// status built from the carrier's normalized ErrorResponse when the Err
// branch is set. engine.Execute returns a non-nil error on every path
// where it sets the Err branch itself (including 4xx/5xx), so here that
// branch is reached only when an integration's HandleSuccess sets it
// and returns no error.
func resultOrErr[T any](res connector.Result[T]) (T, error) {
	var zero T
	if res.IsOk() {
		v, _ := res.Unwrap()
		return v, nil
	}
	if er, ok := res.UnwrapErr(); ok {
		return zero, status.Error(codes.FailedPrecondition, er.Code+": "+er.Message)
	}
	return zero, status.Error(codes.Internal, "connector returned no response")
}

func (e *Edge) Authorize(ctx context.Context, req *pb.AuthorizeRequest) (*pb.PaymentsResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.PaymentFlowData{Status: connector.Started},
		Request: connector.PaymentsAuthorizeData{
			AmountMinorUnits: req.AmountMinorUnits,
			Currency:         req.Currency,
			PaymentMethod:    paymentMethodFromPB(req.PaymentMethod),
			CaptureMethod:    connector.CaptureMethod(req.CaptureMethod),
			AuthType:         connector.AuthType(req.AuthType),
			MerchantRefID:    req.MerchantRefID,
			ReturnURL:        req.ReturnURL,
		},
	}
	if cerr := engine.Execute(ctx, e.eng, svc.Authorize, rd, callContext(id, "authorize")); cerr != nil {
		rd.ResourceCommon.Status = connector.Failure
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return paymentsResponseToPB(resp), nil
}

func (e *Edge) Capture(ctx context.Context, req *pb.CaptureRequest) (*pb.PaymentsResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.Capture, connector.PaymentFlowData, connector.PaymentsCaptureData, connector.PaymentsResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.PaymentFlowData{Status: connector.Pending},
		Request: connector.PaymentsCaptureData{
			ConnectorTransactionID: req.ConnectorTransactionID,
			AmountToCaptureMinor:   req.AmountToCaptureMinor,
			Currency:               req.Currency,
		},
	}
	if cerr := engine.Execute(ctx, e.eng, svc.Capture, rd, callContext(id, "capture")); cerr != nil {
		rd.ResourceCommon.Status = connector.Failure
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return paymentsResponseToPB(resp), nil
}

func (e *Edge) Void(ctx context.Context, req *pb.VoidRequest) (*pb.PaymentsResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.Void, connector.PaymentFlowData, connector.PaymentsVoidData, connector.PaymentsResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.PaymentFlowData{Status: connector.Pending},
		Request: connector.PaymentsVoidData{
			ConnectorTransactionID: req.ConnectorTransactionID,
			CancellationReason:     req.CancellationReason,
		},
	}
	if cerr := engine.Execute(ctx, e.eng, svc.Void, rd, callContext(id, "void")); cerr != nil {
		rd.ResourceCommon.Status = connector.Failure
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return paymentsResponseToPB(resp), nil
}

func (e *Edge) PSync(ctx context.Context, req *pb.PSyncRequest) (*pb.PaymentsResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.PSync, connector.PaymentFlowData, connector.PaymentsSyncData, connector.PaymentsResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.PaymentFlowData{Status: connector.Pending},
		Request:        connector.PaymentsSyncData{ConnectorTransactionID: req.ConnectorTransactionID},
	}
	if cerr := engine.Execute(ctx, e.eng, svc.PSync, rd, callContext(id, "psync")); cerr != nil {
		rd.ResourceCommon.Status = connector.Failure
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return paymentsResponseToPB(resp), nil
}

func (e *Edge) Refund(ctx context.Context, req *pb.RefundRequest) (*pb.RefundsResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.Refund, connector.RefundFlowData, connector.RefundsData, connector.RefundsResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.RefundFlowData{Status: connector.RefundPending},
		Request: connector.RefundsData{
			ConnectorTransactionID: req.ConnectorTransactionID,
			AmountMinorUnits:       req.AmountMinorUnits,
			Currency:               req.Currency,
			Reason:                 req.Reason,
		},
	}
	if cerr := engine.Execute(ctx, e.eng, svc.Refund, rd, callContext(id, "refund")); cerr != nil {
		rd.ResourceCommon.Status = connector.RefundFailure
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return refundsResponseToPB(resp), nil
}

func (e *Edge) RSync(ctx context.Context, req *pb.RSyncRequest) (*pb.RefundsResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.RSync, connector.RefundFlowData, connector.RefundSyncData, connector.RefundsResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.RefundFlowData{Status: connector.RefundPending},
		Request:        connector.RefundSyncData{ConnectorRefundID: req.ConnectorRefundID},
	}
	if cerr := engine.Execute(ctx, e.eng, svc.RSync, rd, callContext(id, "rsync")); cerr != nil {
		rd.ResourceCommon.Status = connector.RefundFailure
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return refundsResponseToPB(resp), nil
}

func (e *Edge) SetupMandate(ctx context.Context, req *pb.SetupMandateRequest) (*pb.PaymentsResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.SetupMandate, connector.PaymentFlowData, connector.SetupMandateData, connector.PaymentsResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.PaymentFlowData{Status: connector.Pending},
		Request: connector.SetupMandateData{
			PaymentMethod: paymentMethodFromPB(req.PaymentMethod),
			Currency:      req.Currency,
			MerchantRefID: req.MerchantRefID,
			ReturnURL:     req.ReturnURL,
		},
	}
	if cerr := engine.Execute(ctx, e.eng, svc.SetupMandate, rd, callContext(id, "setup_mandate")); cerr != nil {
		rd.ResourceCommon.Status = connector.Failure
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return paymentsResponseToPB(resp), nil
}

func (e *Edge) CreateOrder(ctx context.Context, req *pb.CreateOrderRequest) (*pb.CreateOrderResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.CreateOrder, connector.PaymentFlowData, connector.CreateOrderData, connector.CreateOrderResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.PaymentFlowData{Status: connector.Pending},
		Request: connector.CreateOrderData{
			AmountMinorUnits: req.AmountMinorUnits,
			Currency:         req.Currency,
			MerchantRefID:    req.MerchantRefID,
		},
	}
	if cerr := engine.Execute(ctx, e.eng, svc.CreateOrder, rd, callContext(id, "create_order")); cerr != nil {
		rd.ResourceCommon.Status = connector.Failure
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return &pb.CreateOrderResponse{ConnectorOrderID: resp.ConnectorOrderID}, nil
}

func (e *Edge) AcceptDispute(ctx context.Context, req *pb.AcceptDisputeRequest) (*pb.DisputeResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.AcceptDispute, connector.DisputeFlowData, connector.AcceptDisputeData, connector.DisputeResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.DisputeFlowData{Status: connector.Opened},
		Request:        connector.AcceptDisputeData{ConnectorDisputeID: req.ConnectorDisputeID},
	}
	// DisputeStatus has no generic failure member (Won/Lost are
	// outcome-specific), so an Execute error leaves resource_common at
	// Opened rather than forcing a misleading terminal status.
	if cerr := engine.Execute(ctx, e.eng, svc.AcceptDispute, rd, callContext(id, "accept_dispute")); cerr != nil {
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return disputeResponseToPB(resp), nil
}

func (e *Edge) SubmitEvidence(ctx context.Context, req *pb.SubmitEvidenceRequest) (*pb.DisputeResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.SubmitEvidence, connector.DisputeFlowData, connector.SubmitEvidenceData, connector.DisputeResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.DisputeFlowData{Status: connector.Opened},
		Request: connector.SubmitEvidenceData{
			ConnectorDisputeID: req.ConnectorDisputeID,
			EvidenceText:       req.EvidenceText,
		},
	}
	if cerr := engine.Execute(ctx, e.eng, svc.SubmitEvidence, rd, callContext(id, "submit_evidence")); cerr != nil {
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return disputeResponseToPB(resp), nil
}

func (e *Edge) DefendDispute(ctx context.Context, req *pb.DefendDisputeRequest) (*pb.DisputeResponse, error) {
	id, svc, err := e.selectService(ctx)
	if err != nil {
		return nil, err
	}
	rd := &connector.RouterData[flow.DefendDispute, connector.DisputeFlowData, connector.DefendDisputeData, connector.DisputeResponseData]{
		ConnectorAuth:  id.Auth,
		ResourceCommon: connector.DisputeFlowData{Status: connector.Opened},
		Request:        connector.DefendDisputeData{ConnectorDisputeID: req.ConnectorDisputeID},
	}
	if cerr := engine.Execute(ctx, e.eng, svc.DefendDispute, rd, callContext(id, "defend_dispute")); cerr != nil {
		return nil, toConnectorErr(cerr)
	}
	resp, err := resultOrErr(rd.Response)
	if err != nil {
		return nil, err
	}
	return disputeResponseToPB(resp), nil
}
