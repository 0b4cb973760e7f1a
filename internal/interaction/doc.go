// Package interaction defines the boundary to external drug/herb interaction
// data. The Provider interface separates the safety engine from any concrete
// data source, following the hexagonal architecture pattern; the engine never
// interprets a provider failure as "no interaction".
package interaction
