package geometry

import "math"

// WGS84 ellipsoid parameters used by the UTM projection.
const (
	wgs84A = 6378137.0
	wgs84F = 1.0 / 298.257223563
	utmK0  = 0.9996
)

// UTMZone returns the UTM zone number (1-60) for a longitude/latitude pair,
// including the standard exceptions for southern Norway and Svalbard.
func UTMZone(lon, lat float64) int {
	zone := int((lon+180)/6) + 1

	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		zone = 32
	}
	if lat >= 72 && lat < 84 {
		switch {
		case lon >= 0 && lon < 9:
			zone = 31
		case lon >= 9 && lon < 21:
			zone = 33
		case lon >= 21 && lon < 33:
			zone = 35
		case lon >= 33 && lon < 42:
			zone = 37
		}
	}
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return zone
}

// AreaKm2UTM computes the polygon area by projecting each vertex to the UTM
// zone of the centroid and applying the shoelace formula in meters. It is
// more accurate than the flat-degree fast path at high latitudes and larger
// extents, at the cost of the projection work per vertex.
func (p *Polygon) AreaKm2UTM() float64 {
	c := p.Centroid()
	zone := UTMZone(c.Lon, c.Lat)
	lon0 := float64(zone-1)*6 - 180 + 3 // central meridian in degrees

	n := len(p.vertices)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, v := range p.vertices {
		xs[i], ys[i] = utmForward(v.Lon, v.Lat, lon0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += xs[i] * ys[j]
		sum -= xs[j] * ys[i]
	}
	areaM2 := math.Abs(sum) / 2.0
	return areaM2 / 1e6
}

// utmForward applies the transverse Mercator forward projection (WGS84) for
// the given central meridian, returning easting/northing in meters.
func utmForward(lonDeg, latDeg, lon0Deg float64) (x, y float64) {
	lat := latDeg * math.Pi / 180
	dLon := (lonDeg - lon0Deg) * math.Pi / 180

	e2 := wgs84F * (2 - wgs84F)
	ep2 := e2 / (1 - e2)

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	tanLat := math.Tan(lat)

	nRad := wgs84A / math.Sqrt(1-e2*sinLat*sinLat)
	t := tanLat * tanLat
	c := ep2 * cosLat * cosLat
	a := cosLat * dLon

	// Meridian arc length.
	m := wgs84A * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*lat -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*lat) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*lat) -
		(35*e2*e2*e2/3072)*math.Sin(6*lat))

	x = utmK0*nRad*(a+(1-t+c)*a*a*a/6+
		(5-18*t+t*t+72*c-58*ep2)*a*a*a*a*a/120) + 500000

	y = utmK0 * (m + nRad*tanLat*(a*a/2+
		(5-t+9*c+4*c*c)*a*a*a*a/24+
		(61-58*t+t*t+600*c-330*ep2)*a*a*a*a*a*a/720))
	if latDeg < 0 {
		y += 10000000 // southern hemisphere false northing
	}
	return x, y
}
