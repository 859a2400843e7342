// Package model defines the data structures used throughout nutrilog.
//
// These are the client-side shapes of the remote API's entities. The api
// package converts wire records into them; the nutrition, state and core
// packages operate only on these types.
//
// # FoodItem
//
// A saved food with its macro profile per 100 reference units:
//
//	type FoodItem struct {
//	    ID          string  // Opaque id assigned by the API
//	    Name        string
//	    Calories    float64 // kcal per 100 units
//	    Protein     float64 // g per 100 units
//	    Carbs       float64 // g per 100 units
//	    Fat         float64 // g per 100 units
//	    ServingSize string  // "100g"
//	    Barcode     string  // Optional, 8 to 20 digits
//	}
//
// # MealEntry
//
// A consumption event holding a copy of the food it was recorded with. Date
// and Time are derived from ConsumedAt in the user's timezone.
//
// # UserSettings and DailyTotals
//
// UserSettings is the per-user singleton of daily targets. DailyTotals is
// never stored; it is computed by the nutrition package.
package model
