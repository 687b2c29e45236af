// Package classification holds the curated default rule content and the
// YAML rule-file format used to seed a rule store.
package classification

// Default rule content. Keyword categories must all appear in
// model.DefaultCategoryNames.

// DefaultMerchants returns the curated merchant rules.
func DefaultMerchants() []MerchantEntry {
	return []MerchantEntry{
		{Pattern: "TIM HORTONS", Alternates: []string{"TIMHORT", "TIM HORTON"}, Category: "Food", Label: "Coffee"},
		{Pattern: "STARBUCKS", Alternates: []string{"SBUX"}, Category: "Food", Label: "Coffee"},
		{Pattern: "SECOND CUP", Category: "Food", Label: "Coffee"},
		{Pattern: "MCDONALD'S", Alternates: []string{"MCDONALDS", "MCDONALD"}, Category: "Food", Label: "Fast Food"},
		{Pattern: "SUBWAY", Category: "Food", Label: "Fast Food"},
		{Pattern: "LOBLAWS", Category: "Food", Label: "Groceries"},
		{Pattern: "METRO", Alternates: []string{"METRO PLUS"}, Category: "Food", Label: "Groceries"},
		{Pattern: "SOBEYS", Category: "Food", Label: "Groceries"},
		{Pattern: "MAXI", Category: "Food", Label: "Groceries"},
		{Pattern: "PROVIGO", Category: "Food", Label: "Groceries"},
		{Pattern: "UBER EATS", Category: "Food", Label: "Delivery"},
		{Pattern: "DOORDASH", Category: "Food", Label: "Delivery"},
		{Pattern: "SKIP THE DISHES", Alternates: []string{"SKIPTHEDISH"}, Category: "Food", Label: "Delivery"},
		{Pattern: "NETFLIX", Alternates: []string{"NFLX"}, Category: "Subscriptions", Label: "Streaming"},
		{Pattern: "SPOTIFY", Category: "Subscriptions", Label: "Music"},
		{Pattern: "DISNEY PLUS", Alternates: []string{"DISNEY+"}, Category: "Subscriptions", Label: "Streaming"},
		{Pattern: "AMAZON PRIME", Alternates: []string{"PRIME VIDEO", "AMZN PRIME"}, Category: "Subscriptions", Label: "Streaming"},
		{Pattern: "AMAZON", Alternates: []string{"AMZN MKTP", "AMAZON.CA"}, Category: "Shopping", Label: "Online"},
		{Pattern: "COSTCO", Alternates: []string{"COSTCO WHOLESALE"}, Category: "Shopping", Label: "Warehouse"},
		{Pattern: "WALMART", Alternates: []string{"WAL-MART", "WM SUPERCENTER"}, Category: "Shopping", Label: "General"},
		{Pattern: "CANADIAN TIRE", Alternates: []string{"CDN TIRE"}, Category: "Shopping", Label: "Hardware"},
		{Pattern: "IKEA", Category: "Shopping", Label: "Home"},
		{Pattern: "SHOPPERS DRUG MART", Alternates: []string{"SHOPPERS DRUG"}, Category: "Health", Label: "Pharmacy"},
		{Pattern: "JEAN COUTU", Category: "Health", Label: "Pharmacy"},
		{Pattern: "PHARMAPRIX", Category: "Health", Label: "Pharmacy"},
		{Pattern: "UBER", Alternates: []string{"UBER TRIP"}, Category: "Transport", Label: "Rideshare"},
		{Pattern: "LYFT", Category: "Transport", Label: "Rideshare"},
		{Pattern: "PETRO CANADA", Alternates: []string{"PETRO-CANADA", "PETROCAN"}, Category: "Transport", Label: "Fuel"},
		{Pattern: "SHELL", Category: "Transport", Label: "Fuel"},
		{Pattern: "OC TRANSPO", Category: "Transport", Label: "Transit"},
		{Pattern: "PRESTO", Category: "Transport", Label: "Transit"},
		{Pattern: "AIR CANADA", Category: "Travel", Label: "Flights"},
		{Pattern: "WESTJET", Category: "Travel", Label: "Flights"},
		{Pattern: "VIA RAIL", Category: "Travel", Label: "Train"},
		{Pattern: "AIRBNB", Category: "Travel", Label: "Lodging"},
		{Pattern: "ROGERS", Category: "Bills", Label: "Phone & Internet"},
		{Pattern: "BELL CANADA", Alternates: []string{"BELL MOBILITY"}, Category: "Bills", Label: "Phone & Internet"},
		{Pattern: "VIDEOTRON", Category: "Bills", Label: "Phone & Internet"},
		{Pattern: "UDEMY", Category: "Education", Label: "Courses"},
		{Pattern: "COURSERA", Category: "Education", Label: "Courses"},
		{Pattern: "LINKEDIN", Category: "Work", Label: "Professional"},
		{Pattern: "GOODLIFE", Alternates: []string{"GOODLIFE FITNESS"}, Category: "Health", Label: "Fitness"},
	}
}

// DefaultKeywords returns the curated keyword rules, in storage order.
func DefaultKeywords() []KeywordEntry {
	return []KeywordEntry{
		{Keyword: "RENT", Category: "Housing", Label: "Rent", Language: "en"},
		{Keyword: "LOYER", Category: "Housing", Label: "Rent", Language: "fr"},
		{Keyword: "MORTGAGE", Category: "Housing", Label: "Mortgage", Language: "en"},
		{Keyword: "HYPOTHEQUE", Category: "Housing", Label: "Mortgage", Language: "fr"},
		{Keyword: "CONDO FEE", Category: "Housing", Label: "Condo Fees", Language: "en"},
		{Keyword: "PROPERTY TAX", Category: "Housing", Label: "Property Tax", Language: "en"},
		{Keyword: "HYDRO", Category: "Bills", Label: "Gas & Electricity"},
		{Keyword: "ENBRIDGE", Category: "Bills", Label: "Gas & Electricity"},
		{Keyword: "ELECTRICITE", Category: "Bills", Label: "Gas & Electricity", Language: "fr"},
		{Keyword: "INSUR", Category: "Bills", Label: "Insurance", Language: "en"},
		{Keyword: "ASSURANCE", Category: "Bills", Label: "Insurance", Language: "fr"},
		{Keyword: "INTERNET", Category: "Bills", Label: "Phone & Internet"},
		{Keyword: "MOBILE", Category: "Bills", Label: "Phone & Internet"},
		{Keyword: "SUBSCRIPTION", Category: "Subscriptions", Label: "Subscription", Language: "en"},
		{Keyword: "ABONNEMENT", Category: "Subscriptions", Label: "Subscription", Language: "fr"},
		{Keyword: "MEMBERSHIP", Category: "Subscriptions", Label: "Membership", Language: "en"},
		{Keyword: "GROCER", Category: "Food", Label: "Groceries", Language: "en"},
		{Keyword: "EPICERIE", Category: "Food", Label: "Groceries", Language: "fr"},
		{Keyword: "RESTAURANT", Category: "Food", Label: "Restaurants"},
		{Keyword: "CAFE", Category: "Food", Label: "Coffee"},
		{Keyword: "PIZZA", Category: "Food", Label: "Restaurants"},
		{Keyword: "BOULANGERIE", Category: "Food", Label: "Bakery", Language: "fr"},
		{Keyword: "HOTEL", Category: "Travel", Label: "Lodging"},
		{Keyword: "AIRLINE", Category: "Travel", Label: "Flights", Language: "en"},
		{Keyword: "AEROPORT", Category: "Travel", Label: "Airport", Language: "fr"},
		{Keyword: "AIRPORT", Category: "Travel", Label: "Airport", Language: "en"},
		{Keyword: "PHARMA", Category: "Health", Label: "Pharmacy"},
		{Keyword: "DENTAL", Category: "Health", Label: "Dental", Language: "en"},
		{Keyword: "DENTAIRE", Category: "Health", Label: "Dental", Language: "fr"},
		{Keyword: "CLINIC", Category: "Health", Label: "Medical"},
		{Keyword: "PHYSIO", Category: "Health", Label: "Medical"},
		{Keyword: "PARKING", Category: "Transport", Label: "Parking"},
		{Keyword: "STATIONNEMENT", Category: "Transport", Label: "Parking", Language: "fr"},
		{Keyword: "GAS STATION", Category: "Transport", Label: "Fuel", Language: "en"},
		{Keyword: "TAXI", Category: "Transport", Label: "Taxi"},
		{Keyword: "TUITION", Category: "Education", Label: "Tuition", Language: "en"},
		{Keyword: "SCOLARITE", Category: "Education", Label: "Tuition", Language: "fr"},
		{Keyword: "UNIVERSITY", Category: "Education", Label: "Tuition", Language: "en"},
		{Keyword: "BOOKSTORE", Category: "Education", Label: "Books", Language: "en"},
		{Keyword: "SALON", Category: "Personal", Label: "Personal Care"},
		{Keyword: "BARBER", Category: "Personal", Label: "Personal Care", Language: "en"},
		{Keyword: "CINEMA", Category: "Personal", Label: "Entertainment"},
		{Keyword: "CLOTHING", Category: "Shopping", Label: "Clothing", Language: "en"},
		{Keyword: "VETEMENTS", Category: "Shopping", Label: "Clothing", Language: "fr"},
		{Keyword: "HARDWARE", Category: "Shopping", Label: "Hardware", Language: "en"},
		{Keyword: "COWORKING", Category: "Work", Label: "Office"},
		{Keyword: "OFFICE SUPPL", Category: "Work", Label: "Office Supplies", Language: "en"},
	}
}

// Defaults bundles the curated merchant and keyword rules as a rule file.
func Defaults() RuleFile {
	return RuleFile{
		Merchants: DefaultMerchants(),
		Keywords:  DefaultKeywords(),
	}
}
