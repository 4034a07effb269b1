package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-portal/internal/config"
)

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"customerId=42", "salesDocNumber= 9000 ", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"customerId":     "42",
		"salesDocNumber": " 9000 ",
		"note":           "a=b",
	}, params)

	_, err = parseParams([]string{"missing"})
	assert.Error(t, err)
	_, err = parseParams([]string{"=value"})
	assert.Error(t, err)
}

func TestNewSOAPClient(t *testing.T) {
	client := newSOAPClient(config.BackendConfig{
		BaseURL:        "https://backend.example.com:44300/",
		ServicePath:    "/sap/bc/srt/scs/sap/",
		Client:         "100",
		TimeoutSeconds: 5,
	})
	assert.Equal(t,
		"https://backend.example.com:44300/sap/bc/srt/scs/sap/zssm34_p1_sales_ws?sap-client=100",
		client.Endpoint("zssm34_p1_sales_ws"))
}

func TestLoadCatalogDefault(t *testing.T) {
	catalog, err := loadCatalog(config.BackendConfig{})
	require.NoError(t, err)
	assert.Contains(t, catalog.Names(), "invoice_form")
}
