// Package shipment provides the Shipment aggregate and its collaborating
// value objects: the quoted Rate chosen for an order and the purchased
// Label with format detection.
//
// A shipment ties one order to one box and one rate. Label payloads are
// stored as raw bytes with a sniffed format marker so the print pipeline
// can route ZPL directly to the printer and reject formats it cannot
// print.
package shipment
