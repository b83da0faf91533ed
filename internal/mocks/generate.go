// Package mocks holds gomock doubles for the marketplace backend capabilities and the action ledger.
//
// Regenerate after interface changes:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	billing := mocks.NewMockBillingBackend(ctrl)
//	billing.EXPECT().RefundPayment(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=core_mock.go github.com/target/marketplace-console/internal/core DisputeBackend,BillingBackend,DashboardBackend,ExportBackend,DirectoryBackend,UserBackend,SubscriptionBackend,JobWorkflowBackend,JobListBackend

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ledger_mock.go github.com/target/marketplace-console/internal/ports ActionLedger
