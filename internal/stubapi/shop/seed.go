package shop

// DefaultCatalog - товары, которыми заполняется магазин при запуске.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID: 1, Name: "Electric Kettle 1.7L", ShortName: "Kettle",
			Description:   "Stainless steel body*Auto shut-off*1500W",
			MainImage:     "/media/products/kettle.jpg",
			OriginalPrice: 1499, DiscountPercentage: 20, Stock: 25,
		},
		{
			ID: 2, Name: "Cast Iron Kettlebell 8kg", ShortName: "Kettlebell",
			Description:   "Powder coated*Flat base",
			MainImage:     "/media/products/kettlebell.jpg",
			OriginalPrice: 1899, DiscountPercentage: 10, Stock: 10,
		},
		{
			ID: 3, Name: "Wireless Earbuds", ShortName: "Earbuds",
			Description:   "Bluetooth 5.3*24h battery*IPX4",
			MainImage:     "/media/products/earbuds.jpg",
			OriginalPrice: 2999, DiscountPercentage: 35, Stock: 50,
		},
		{
			ID: 4, Name: "Cotton Bath Towel", ShortName: "Towel",
			Description:   "500 GSM*Quick dry",
			MainImage:     "/media/products/towel.jpg",
			OriginalPrice: 699, DiscountPercentage: 0, Stock: 0,
		},
	}
}
