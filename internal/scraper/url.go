package scraper

import "fmt"

// searchURLTemplate is the one-way award search URL. The slices parameter is
// a percent-encoded JSON array with a single slice; origin/destination/date
// are interpolated inside it.
const searchURLTemplate = "https://www.aa.com/booking/search?locale=en_US" +
	"&pax=%d&adult=%d&child=%d" +
	"&type=OneWay&searchType=Award&cabin=&carriers=ALL" +
	"&slices=%%5B%%7B%%22orig%%22:%%22%s%%22,%%22origNearby%%22:true," +
	"%%22dest%%22:%%22%s%%22,%%22destNearby%%22:true," +
	"%%22date%%22:%%22%s%%22%%7D%%5D" +
	"&maxAwardSegmentAllowed=2"

// BuildSearchURL returns the award search URL for one query combination.
// The date must be in YYYY-MM-DD format.
func BuildSearchURL(date, origin, destination string, adults, children int) string {
	return fmt.Sprintf(searchURLTemplate, adults+children, adults, children, origin, destination, date)
}
