package mailer

import (
	"fmt"
	"html"
	"strings"

	"github.com/pingscomm/shop-backend/internal/domain/models"
)

func orderLinesHTML(lines []models.OrderLine) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
			</tr>`,
			html.EscapeString(line.Name), line.Quantity, html.EscapeString(line.Price)))
	}
	return b.String()
}

const orderLinesTableHead = `
	<table style="width: 100%; border-collapse: collapse;">
		<thead>
			<tr style="background-color: #f8fafc;">
				<th style="text-align: left; padding: 8px; border-bottom: 2px solid #e2e8f0;">Item</th>
				<th style="text-align: center; padding: 8px; border-bottom: 2px solid #e2e8f0;">Qty</th>
				<th style="text-align: right; padding: 8px; border-bottom: 2px solid #e2e8f0;">Price</th>
			</tr>
		</thead>
		<tbody>`

func orderReceivedHTML(order *models.Order, lines []models.OrderLine) string {
	return fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0; border-radius: 12px;">
	<h2 style="color: #0f172a; border-bottom: 1px solid #e2e8f0; padding-bottom: 10px;">New Order Received</h2>
	<div style="margin-top: 20px;">
		<p><strong>Order ID:</strong> #%d</p>
		<p><strong>Customer:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Phone:</strong> %s</p>
		<p><strong>Address:</strong> %s</p>
		<p><strong>Total:</strong> %s</p>
		<div style="margin-top: 20px;">
			<h3 style="color: #0f172a; margin-bottom: 10px;">Items:</h3>
			%s%s
			</tbody>
			</table>
		</div>
	</div>
</div>`,
		order.ID,
		html.EscapeString(order.CustomerName),
		html.EscapeString(order.CustomerEmail),
		html.EscapeString(order.CustomerPhone),
		html.EscapeString(order.Address),
		html.EscapeString(order.TotalAmount),
		orderLinesTableHead,
		orderLinesHTML(lines))
}

func orderConfirmationHTML(order *models.Order, lines []models.OrderLine) string {
	return fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0; border-radius: 12px;">
	<h2 style="color: #0f172a; border-bottom: 1px solid #e2e8f0; padding-bottom: 10px;">Order Confirmation</h2>
	<p>Hello %s,</p>
	<p>Thank you for your order! We have received it and are processing it now.</p>
	<div style="margin-top: 20px; padding: 15px; background-color: #f8fafc; border-radius: 8px;">
		<p><strong>Order ID:</strong> #%d</p>
		<p><strong>Total Amount:</strong> %s</p>
		<p><strong>Delivery Address:</strong> %s</p>
	</div>
	<div style="margin-top: 20px;">
		<h3 style="color: #0f172a; margin-bottom: 10px;">Order Details:</h3>
		%s%s
		</tbody>
		</table>
	</div>
	<p style="margin-top: 30px;">We'll contact you at %s if we need any further information.</p>
	<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #e2e8f0; font-size: 12px; color: #94a3b8; text-align: center;">
		Thank you for shopping with Pings Communications
	</div>
</div>`,
		html.EscapeString(order.CustomerName),
		order.ID,
		html.EscapeString(order.TotalAmount),
		html.EscapeString(order.Address),
		orderLinesTableHead,
		orderLinesHTML(lines),
		html.EscapeString(order.CustomerPhone))
}

func contactMessageHTML(message *models.Message) string {
	return fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0; border-radius: 12px;">
	<h2 style="color: #0f172a; border-bottom: 1px solid #e2e8f0; padding-bottom: 10px;">New Contact Form Submission</h2>
	<div style="margin-top: 20px;">
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
		<p><strong>Subject:</strong> %s</p>
		<div style="margin-top: 20px; padding: 15px; background-color: #f8fafc; border-radius: 8px;">
			<p style="margin-top: 0; font-weight: bold; color: #64748b;">Message:</p>
			<p style="white-space: pre-wrap; line-height: 1.6; color: #334155;">%s</p>
		</div>
	</div>
	<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #e2e8f0; font-size: 12px; color: #94a3b8; text-align: center;">
		Sent from Pings Communications Business Website
	</div>
</div>`,
		html.EscapeString(message.Name),
		html.EscapeString(message.Email),
		html.EscapeString(message.Email),
		html.EscapeString(message.Subject),
		html.EscapeString(message.Message))
}
