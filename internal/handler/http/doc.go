// Package http implements the REST surface of the allocation ledger.
//
// Paths and JSON field names follow the contract of the existing front end
// (/clientes, /alocacoes, /ativos). Request tracing, access logging, response
// compression, CORS and request timeouts are applied here before requests
// reach the service layer.
package http
