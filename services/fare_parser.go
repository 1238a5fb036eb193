package services

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"safar/models"

	"github.com/PuerkitoBio/goquery"
)

// FareQuote - одна котировка с табло тарифов партнера
type FareQuote struct {
	Route string  // "TAS-DXB" для avia, "hotel-<city_id>" для отелей
	Price float64
}

// FetchFareBoard загружает и парсит табло тарифов
func FetchFareBoard(url string) ([]FareQuote, error) {
	client := &http.Client{}
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %v", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения страницы: %v", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга HTML: %v", err)
	}

	return ParseFareBoard(doc), nil
}

// ParseFareBoard извлекает котировки из строк таблицы .fare-row
func ParseFareBoard(doc *goquery.Document) []FareQuote {
	var quotes []FareQuote
	doc.Find(".fare-row").Each(func(i int, row *goquery.Selection) {
		route := strings.TrimSpace(row.Find(".route").First().Text())
		priceText := strings.TrimSpace(row.Find(".price").First().Text())
		if route == "" || priceText == "" {
			return
		}

		// Цены приходят вида "1 250 000" или "1,250,000.50"
		priceText = strings.NewReplacer(" ", "", " ", "", ",", "").Replace(priceText)
		price, err := strconv.ParseFloat(priceText, 64)
		if err != nil || price <= 0 {
			return
		}

		quotes = append(quotes, FareQuote{Route: strings.ToUpper(route), Price: price})
	})
	return quotes
}

// QuoteKeyForAlert строит ключ маршрута для поиска котировки по алерту
func QuoteKeyForAlert(alert *models.PriceAlert) (string, error) {
	switch alert.AlertType {
	case "avia":
		params, err := alert.AviaParams()
		if err != nil {
			return "", err
		}
		return strings.ToUpper(params.DepartureAirport + "-" + params.ArrivalAirport), nil
	case "hotel":
		params, err := alert.HotelParams()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("HOTEL-%d", params.CityID), nil
	default:
		return "", fmt.Errorf("неизвестный тип алерта: %s", alert.AlertType)
	}
}

// LookupQuote ищет котировку для алерта среди загруженных
func LookupQuote(quotes []FareQuote, alert *models.PriceAlert) (float64, bool) {
	key, err := QuoteKeyForAlert(alert)
	if err != nil {
		return 0, false
	}
	for _, quote := range quotes {
		if quote.Route == key {
			return quote.Price, true
		}
	}
	return 0, false
}
