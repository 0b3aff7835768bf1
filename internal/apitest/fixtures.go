package apitest

// ThreeCityReport is an analysis result whose second and third cities tie
// on general demand.
const ThreeCityReport = `{
  "cities": [
    {
      "city": "Pune",
      "subheading": "Student-heavy cafe culture",
      "score": 72,
      "audience_match": 68,
      "general_demand": 80,
      "gpt_insights": "Pune has a young population and a growing cafe scene.",
      "influencers": [
        {"name": "Asha Rao", "platform": "Instagram", "niche": "Food", "bio": "Street food explorer", "contact": "asha@example.com"}
      ],
      "inventory": [
        {"name": "Bean Co", "inventory_type": "Coffee beans", "location": "Hadapsar", "phone": "+91 20 5550 1000", "contact": "+91 98765 43210", "website": "https://beanco.example"}
      ],
      "agents": [
        {"name": "R. Kulkarni", "specialization": "Retail", "agency": "Prime Spaces", "contact": "rk@prime.example", "website": "https://prime.example"}
      ],
      "popular_places": [
        {"name": "FC Road", "address": "Fergusson College Rd", "phone": "", "website": "", "map_url": "https://maps.example/fc-road"}
      ]
    },
    {
      "city": "Bengaluru",
      "score": 91,
      "audience_match": 88,
      "general_demand": 95,
      "gpt_insights": "Bengaluru's tech workforce drives premium coffee demand.",
      "influencers": [
        {"name": "Kiran M", "platform": "YouTube", "niche": "Coffee", "contact": "kiran@example.com"},
        {"name": "Devi S", "platform": "Instagram", "niche": "Lifestyle"}
      ],
      "inventory": [],
      "agents": [],
      "popular_places": []
    },
    {
      "city": "Hyderabad",
      "score": 85,
      "audience_match": 79,
      "general_demand": 95,
      "gpt_insights": "Hyderabad ties on demand with lower rents.",
      "influencers": [],
      "inventory": [],
      "agents": [],
      "popular_places": []
    }
  ]
}`
