package services

import (
	"sort"
	"strings"

	"tripnect/pkg/geo"
)

// KnownPlace is a static fallback coordinate for a well-known place name.
type KnownPlace struct {
	Key       string
	Point     geo.Point
	Formatted string
}

// PlaceTable matches free text against known place names.
type PlaceTable struct {
	byKey map[string]KnownPlace
	keys  []string
}

func NewPlaceTable(places []KnownPlace) *PlaceTable {
	t := &PlaceTable{byKey: make(map[string]KnownPlace, len(places))}
	for _, p := range places {
		key := normalizePlaceKey(p.Key)
		if key == "" {
			continue
		}
		p.Key = key
		t.byKey[key] = p
	}
	for k := range t.byKey {
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)
	return t
}

func normalizePlaceKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Lookup tries an exact key match first, then a partial one. Keys found
// inside the input win over keys that contain the input; the earliest
// occurrence (then the longest key) wins among the former, the shortest key
// among the latter.
func (t *PlaceTable) Lookup(name string) (KnownPlace, bool) {
	q := normalizePlaceKey(name)
	if q == "" {
		return KnownPlace{}, false
	}
	if p, ok := t.byKey[q]; ok {
		return p, true
	}

	best, bestPos := "", -1
	for _, k := range t.keys {
		pos := strings.Index(q, k)
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos || (pos == bestPos && len(k) > len(best)) {
			best, bestPos = k, pos
		}
	}
	if best != "" {
		return t.byKey[best], true
	}

	for _, k := range t.keys {
		if strings.Contains(k, q) && (best == "" || len(k) < len(best)) {
			best = k
		}
	}
	if best != "" {
		return t.byKey[best], true
	}

	return KnownPlace{}, false
}

func place(key string, lat, lng float64, region string) KnownPlace {
	name := strings.ToUpper(key[:1]) + key[1:]
	formatted := name + ", India"
	if region != "" {
		formatted = name + ", " + region + ", India"
	}
	return KnownPlace{Key: key, Point: geo.NewPoint(lat, lng), Formatted: formatted}
}

// DefaultPlaceTable covers major Indian cities, states and popular road-trip stops.
func DefaultPlaceTable() *PlaceTable {
	return NewPlaceTable([]KnownPlace{
		place("mumbai", 19.076, 72.8777, "Maharashtra"),
		place("delhi", 28.6139, 77.209, ""),
		place("new delhi", 28.6139, 77.209, ""),
		place("bangalore", 12.9716, 77.5946, "Karnataka"),
		place("bengaluru", 12.9716, 77.5946, "Karnataka"),
		place("chennai", 13.0827, 80.2707, "Tamil Nadu"),
		place("kolkata", 22.5726, 88.3639, "West Bengal"),
		place("hyderabad", 17.385, 78.4867, "Telangana"),
		place("pune", 18.5204, 73.8567, "Maharashtra"),
		place("ahmedabad", 23.0225, 72.5714, "Gujarat"),
		place("jaipur", 26.9124, 75.7873, "Rajasthan"),
		place("surat", 21.1702, 72.8311, "Gujarat"),
		place("kanpur", 26.4499, 80.3319, "Uttar Pradesh"),
		place("lucknow", 26.8467, 80.9462, "Uttar Pradesh"),
		place("nagpur", 21.1458, 79.0882, "Maharashtra"),
		place("indore", 22.7196, 75.8577, "Madhya Pradesh"),
		place("thane", 19.2183, 72.9781, "Maharashtra"),
		place("bhopal", 23.2599, 77.4126, "Madhya Pradesh"),
		place("visakhapatnam", 17.6868, 83.2185, "Andhra Pradesh"),
		place("patna", 25.5941, 85.1376, "Bihar"),
		place("vadodara", 22.3072, 73.1812, "Gujarat"),
		place("ludhiana", 30.901, 75.8573, "Punjab"),
		place("agra", 27.1767, 78.0081, "Uttar Pradesh"),
		place("nashik", 19.9975, 73.7898, "Maharashtra"),
		place("rajkot", 22.3039, 70.8022, "Gujarat"),
		place("varanasi", 25.3176, 82.9739, "Uttar Pradesh"),
		place("srinagar", 34.0837, 74.7973, "Jammu and Kashmir"),
		place("aurangabad", 19.8762, 75.3433, "Maharashtra"),
		place("amritsar", 31.634, 74.8723, "Punjab"),
		place("navi mumbai", 19.033, 73.0297, "Maharashtra"),
		place("prayagraj", 25.4358, 81.8463, "Uttar Pradesh"),
		place("allahabad", 25.4358, 81.8463, "Uttar Pradesh"),
		place("ranchi", 23.3441, 85.3096, "Jharkhand"),
		place("coimbatore", 11.0168, 76.9558, "Tamil Nadu"),
		place("jabalpur", 23.1815, 79.9864, "Madhya Pradesh"),
		place("gwalior", 26.2183, 78.1828, "Madhya Pradesh"),
		place("vijayawada", 16.5062, 80.648, "Andhra Pradesh"),
		place("jodhpur", 26.2389, 73.0243, "Rajasthan"),
		place("raipur", 21.2514, 81.6296, "Chhattisgarh"),
		place("kota", 25.2138, 75.8648, "Rajasthan"),
		place("chandigarh", 30.7333, 76.7794, ""),
		place("guwahati", 26.1445, 91.7362, "Assam"),
		place("goa", 15.2993, 74.124, ""),
		place("panaji", 15.4909, 73.8278, "Goa"),
		place("kerala", 10.8505, 76.2711, ""),
		place("kochi", 9.9312, 76.2673, "Kerala"),
		place("thiruvananthapuram", 8.5241, 76.9366, "Kerala"),
		place("rajasthan", 27.0238, 74.2179, ""),
		place("himachal pradesh", 31.1048, 77.1734, ""),
		place("uttarakhand", 30.0668, 79.0193, ""),
		place("uttar pradesh", 26.8467, 80.9462, ""),
		place("bihar", 25.0961, 85.3131, ""),
		place("west bengal", 22.9868, 87.855, ""),
		place("odisha", 20.9517, 85.0985, ""),
		place("madhya pradesh", 22.9734, 78.6569, ""),
		place("gujarat", 23.0225, 72.5714, ""),
		place("maharashtra", 19.7515, 75.7139, ""),
		place("karnataka", 15.3173, 75.7139, ""),
		place("tamil nadu", 11.1271, 78.6569, ""),
		place("andhra pradesh", 15.9129, 79.74, ""),
		place("telangana", 18.1124, 79.0193, ""),
		place("punjab", 31.1471, 75.3412, ""),
		place("haryana", 29.0588, 76.0856, ""),
		place("jammu and kashmir", 34.0837, 74.7973, ""),
		place("assam", 26.2006, 92.9376, ""),
		place("meghalaya", 25.467, 91.3662, ""),
		place("sikkim", 27.533, 88.5122, ""),
		place("manali", 32.2396, 77.1887, "Himachal Pradesh"),
		place("shimla", 31.1048, 77.1734, "Himachal Pradesh"),
		place("dharamshala", 32.219, 76.3234, "Himachal Pradesh"),
		place("leh", 34.1526, 77.5771, "Ladakh"),
		place("rishikesh", 30.0869, 78.2676, "Uttarakhand"),
		place("haridwar", 29.9457, 78.1642, "Uttarakhand"),
		place("dehradun", 30.3165, 78.0322, "Uttarakhand"),
		place("kedarnath", 30.7338877, 79.0669073, "Uttarakhand"),
		place("mussoorie", 30.4598, 78.0664, "Uttarakhand"),
		place("nainital", 29.3803, 79.4636, "Uttarakhand"),
		place("darjeeling", 27.041, 88.2663, "West Bengal"),
		place("gangtok", 27.3389, 88.6065, "Sikkim"),
		place("ooty", 11.4064, 76.6932, "Tamil Nadu"),
		place("kodaikanal", 10.2381, 77.4892, "Tamil Nadu"),
		place("munnar", 10.0889, 77.0595, "Kerala"),
		place("hampi", 15.335, 76.46, "Karnataka"),
		place("mysore", 12.2958, 76.6394, "Karnataka"),
		place("mysuru", 12.2958, 76.6394, "Karnataka"),
		place("udaipur", 24.5854, 73.7125, "Rajasthan"),
		place("pushkar", 26.4899, 74.5511, "Rajasthan"),
		place("mount abu", 24.5925, 73.6827, "Rajasthan"),
		place("jaisalmer", 26.9157, 70.9083, "Rajasthan"),
		place("bikaner", 28.0229, 73.3119, "Rajasthan"),
		place("ajmer", 26.4499, 74.6399, "Rajasthan"),
		place("ranthambore", 26.0173, 76.5026, "Rajasthan"),
		place("khajuraho", 24.8318, 79.9199, "Madhya Pradesh"),
		place("orchha", 25.3518, 78.6418, "Madhya Pradesh"),
		place("sanchi", 23.4793, 77.7398, "Madhya Pradesh"),
		place("bodh gaya", 24.6959, 84.9914, "Bihar"),
		place("rajgir", 25.0285, 85.4219, "Bihar"),
		place("nalanda", 25.1372, 85.4428, "Bihar"),
		place("pondicherry", 11.9416, 79.8083, ""),
		place("puducherry", 11.9416, 79.8083, ""),
		place("madurai", 9.9252, 78.1198, "Tamil Nadu"),
		place("alleppey", 9.4981, 76.3388, "Kerala"),
		place("gokarna", 14.5479, 74.3188, "Karnataka"),
		place("lonavala", 18.7546, 73.4062, "Maharashtra"),
		place("mahabaleshwar", 17.9307, 73.6477, "Maharashtra"),
	})
}
