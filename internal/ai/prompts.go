package ai

// OrderExtractionPrompt instructs the model to pull structured order data
// out of one attachment. The extractor validates the returned shape; the
// prompt only has to make the happy path likely.
const OrderExtractionPrompt = `
You are reading a wholesale purchase order document (CSV, spreadsheet, PDF or photo).

Extract the buyer and the ordered line items.

Return ONLY a JSON object with this exact structure:
{
  "customer_name": "buyer or business name, empty string if not present",
  "items": [
    {
      "name": "product name as written",
      "code": "product/order code if present",
      "sku": "SKU if present",
      "quantity": 1,
      "unit": "unit of measure if present (each, kg, case, ...)",
      "unit_price": 0
    }
  ]
}

Rules:
- name and quantity are required for every item; skip rows without both.
- quantity and unit_price must be numbers, not strings.
- Omit or leave empty any field the document does not show. Do not invent values.
- Ignore subtotal, tax, delivery and total rows; they are not line items.
`
