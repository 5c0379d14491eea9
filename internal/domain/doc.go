// Package domain models district-level disaster-response unit counts and the
// district geometries they are mapped onto.
//
// # Data Sources
//
// Unit counts come from a CSV table with one row per district:
//
//	District,NDRF,SDRF,PAC
//	Lucknow,5,0,
//	Varanasi,2,1,3
//
// A blank cell means the count was not reported. It is kept as absent (nil)
// rather than zero so the difference survives the join, and is only treated
// as zero for totals and tooltip display.
//
// District shapes come from a GeoJSON FeatureCollection whose features carry
// a "district" property and a Polygon or MultiPolygon geometry in lon/lat.
//
// # Categories
//
// NDRF (National Disaster Response Force), SDRF (State Disaster Response
// Force) and PAC (Provincial Armed Constabulary) are treated as opaque
// numeric categories. Each has a fixed color and a default visibility:
//
//	NDRF  red     shown
//	SDRF  green   hidden
//	PAC   yellow  hidden
//
// # Join
//
// The join is a left join anchored on geometry: every feature yields exactly
// one [MergedRecord], in input order, matched or not. Table rows sharing a
// district name are resolved by a [DuplicatePolicy]; see [Join].
package domain
